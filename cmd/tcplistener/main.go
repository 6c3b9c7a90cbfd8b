package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nhdewitt/httpcore/internal/config"
	"github.com/nhdewitt/httpcore/internal/log"
	"github.com/nhdewitt/httpcore/internal/request"
)

var addr string

var rootCmd = &cobra.Command{
	Use:          "tcplistener",
	Short:        "Print each request received on a TCP port.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Init()

		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("error listening: %w", err)
		}
		go func() {
			<-cmd.Context().Done()
			listener.Close()
		}()

		fmt.Fprintln(cmd.OutOrStdout(), "Listening for TCP traffic on", listener.Addr())
		for {
			c, err := listener.Accept()
			if err != nil {
				if cmd.Context().Err() != nil {
					return nil
				}
				return fmt.Errorf("error accepting connection: %w", err)
			}
			log.Infof("Connection accepted: %s", c.RemoteAddr())

			req, err := request.RequestFromReader(c)
			if err != nil {
				log.Errorf("error parsing request: %v", err)
			} else {
				printRequest(cmd.OutOrStdout(), req)
			}

			c.Close()
			log.Infof("Connection to %s closed", c.RemoteAddr())
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", fmt.Sprintf(":%d", config.DefaultPort), "Address to listen on.")
}

// printRequest writes the request line, the headers sorted by name and the
// body to w. Header names are shown in title case.
func printRequest(w io.Writer, req *request.Request) {
	fmt.Fprintln(w, "Request line:")
	fmt.Fprintf(w, "- Method: %s\n", req.RequestLine.Method)
	fmt.Fprintf(w, "- Target: %s\n", req.RequestLine.RequestTarget)
	fmt.Fprintf(w, "- Version: %s\n", req.RequestLine.HttpVersion)

	keys := make([]string, 0, len(req.Headers))
	for k := range req.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	caser := cases.Title(language.English)
	fmt.Fprintln(w, "Headers:")
	for _, k := range keys {
		fmt.Fprintf(w, "- %s: %s\n", caser.String(k), req.Headers[k])
	}

	fmt.Fprintln(w, "Body:")
	fmt.Fprintln(w, string(req.Body))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
