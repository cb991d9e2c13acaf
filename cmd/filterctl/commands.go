package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/logger"
	"github.com/matst80/listing-filters/pkg/messaging"
	"github.com/matst80/listing-filters/pkg/persistance"
	"github.com/matst80/listing-filters/pkg/query"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
)

type options struct {
	status string
	file   string
	page   int
	size   int
	sort   string
	term   string
	url    string
	prefix string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "filterctl",
		Short:        "Inspect and convert listing filter states",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.status, "status", string(filter.ForSale), "default listing status")
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "read the filter document from a file instead of stdin")

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a persisted filter document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readState(cmd, opts)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), s)
		},
	}

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Print the search query string for a filter document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readState(cmd, opts)
			if err != nil {
				return err
			}
			q, err := query.Encode(s, query.Page{Number: opts.page, Size: opts.size}, opts.sort, opts.term)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), q)
			return err
		},
	}
	queryCmd.Flags().IntVar(&opts.page, "page", 0, "result page")
	queryCmd.Flags().IntVar(&opts.size, "size", 0, "page size")
	queryCmd.Flags().StringVar(&opts.sort, "sort", "", "sort order")
	queryCmd.Flags().StringVarP(&opts.term, "query", "q", "", "free text search term")

	chipsCmd := &cobra.Command{
		Use:   "chips",
		Short: "List the active filter chips of a filter document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readState(cmd, opts)
			if err != nil {
				return err
			}
			chips := filter.NewSummarizer(filter.DefaultState(filter.Status(opts.status))).Summarize(s, nil)
			out := cmd.OutOrStdout()
			for _, c := range chips {
				if _, err = fmt.Fprintf(out, "%s\t%s\n", c.Key, c.Label); err != nil {
					return err
				}
			}
			return nil
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Convert a search query string into a filter document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := url.ParseQuery(strings.TrimPrefix(args[0], "?"))
			if err != nil {
				return fmt.Errorf("invalid query: %w", err)
			}
			_, s, err := query.Parse(values, filter.Status(opts.status))
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			return writeDocument(cmd.OutOrStdout(), s)
		},
	}

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Print search events published by the filter api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tailEvents(cmd, opts)
		},
	}
	eventsCmd.Flags().StringVar(&opts.url, "url", os.Getenv("RABBIT_URL"), "rabbitmq url")
	eventsCmd.Flags().StringVar(&opts.prefix, "prefix", "global", "exchange prefix")

	root.AddCommand(normalizeCmd, queryCmd, chipsCmd, parseCmd, eventsCmd)
	return root
}

func readState(cmd *cobra.Command, opts *options) (filter.State, error) {
	var in io.Reader = cmd.InOrStdin()
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return filter.State{}, err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return filter.State{}, err
	}
	return persistance.Decode(data, filter.Status(opts.status))
}

func writeDocument(w io.Writer, s filter.State) error {
	data, err := persistance.Encode(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func tailEvents(cmd *cobra.Command, opts *options) error {
	if opts.url == "" {
		return fmt.Errorf("no rabbitmq url, use --url or RABBIT_URL")
	}
	log := logger.NewStructured("info", "console")
	conn, err := amqp.Dial(opts.url)
	if err != nil {
		return err
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	err = messaging.ListenToTopic(ch, opts.prefix, messaging.SearchTopic, log, func(d amqp.Delivery) error {
		var event map[string]any
		if err := jsoncompat.Unmarshal(d.Body, &event); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "%v\t%v\t%v\n", event["session_id"], event["event"], event["query"])
		return err
	})
	if err != nil {
		return err
	}
	log.Info("listening for search events", logger.Fields{"exchange": messaging.ExchangeName(opts.prefix, messaging.SearchTopic)})
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	return nil
}
