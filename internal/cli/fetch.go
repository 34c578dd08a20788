package cli

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/filament/pkg/filament/client"
	"github.com/yourusername/filament/pkg/filament/http11"
	"github.com/yourusername/filament/pkg/filament/transport"
)

var (
	fetchMethod   string
	fetchHeaders  []string
	fetchBody     string
	fetchVerbose  bool
	fetchInsecure bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch URL",
	Short: "Perform a single HTTP request",
	Long: `Fetch resolves, connects, sends one request, and prints the
response. The response must fit in the configured receive buffer;
larger responses fail with a buffer error rather than truncating.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchMethod, "method", "X", "GET", "request method")
	fetchCmd.Flags().StringArrayVarP(&fetchHeaders, "header", "H", nil, "request header, 'Name: Value' (repeatable)")
	fetchCmd.Flags().StringVarP(&fetchBody, "data", "d", "", "request body")
	fetchCmd.Flags().BoolVarP(&fetchVerbose, "verbose", "v", false, "print response headers")
	fetchCmd.Flags().BoolVarP(&fetchInsecure, "insecure", "k", false, "skip TLS certificate verification")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Close()

	methodID := http11.ParseMethodID([]byte(fetchMethod))
	if !http11.IsValidMethodID(methodID) {
		return fmt.Errorf("unknown method %q", fetchMethod)
	}

	headers, err := parseHeaderFlags(fetchHeaders)
	if err != nil {
		return err
	}

	ccfg := client.DefaultConfig()
	ccfg.DialTimeout = cfg.Client.DialTimeout
	ccfg.ReadTimeout = cfg.Client.ReadTimeout
	ccfg.WriteTimeout = cfg.Client.WriteTimeout
	ccfg.SendBufferSize = cfg.Client.SendBufferSize
	ccfg.UserAgent = cfg.Client.UserAgent
	ccfg.DisableRetry = cfg.Client.DisableRetry
	switch {
	case cfg.Client.DisableTLS:
		ccfg.TLS = nil
	case fetchInsecure || cfg.Client.TLSSkipVerify:
		ccfg.TLS = transport.StdTLS{Config: &tls.Config{InsecureSkipVerify: true}}
	}
	c := client.New(ccfg)

	var body []byte
	if fetchBody != "" {
		body = []byte(fetchBody)
	}

	respBuf := make([]byte, cfg.Client.RecvBufferSize)
	var resp http11.Response
	n, err := c.Do(context.Background(), methodID, args[0], headers, body, respBuf, &resp)
	if err != nil {
		return err
	}
	log.Debugf("received %d bytes", n)

	fmt.Printf("HTTP/1.1 %d %s\n", resp.StatusCode, resp.StatusCode.Text())
	if fetchVerbose {
		for _, h := range resp.Headers() {
			fmt.Printf("%s: %s\n", h.Name, h.Value)
		}
		fmt.Println()
	}
	if !resp.Body.IsEmpty() {
		os.Stdout.Write(resp.Body.Data)
		if resp.Body.Kind == http11.BodyText && !strings.HasSuffix(resp.Body.Text(), "\n") {
			fmt.Println()
		}
	}
	return nil
}

// parseHeaderFlags converts repeated "Name: Value" flags into headers.
func parseHeaderFlags(flags []string) ([]http11.Header, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	headers := make([]http11.Header, 0, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("malformed header %q, want 'Name: Value'", f)
		}
		headers = append(headers, http11.H(strings.TrimSpace(name), strings.TrimSpace(value)))
	}
	return headers, nil
}
