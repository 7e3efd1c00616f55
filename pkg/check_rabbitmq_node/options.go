package check_rabbitmq_node

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/consol-monitoring/check_rabbitmq_node/pkg/threshold"
)

// ErrInvalidOption is returned for option values which cannot be used
var ErrInvalidOption = errors.New("invalid option")

type nodeOpts struct {
	Hostname    string  `short:"H" long:"hostname" required:"true" description:"RabbitMQ management host name"`
	Port        int     `short:"P" long:"port" default:"15672" description:"RabbitMQ management port"`
	Node        string  `short:"n" long:"node" description:"RabbitMQ node, ex.: rabbit@host (default: all nodes)"`
	User        string  `short:"u" long:"user" default:"guest" description:"RabbitMQ username"`
	Password    string  `short:"p" long:"password" default:"guest" description:"RabbitMQ password"`
	SSL         bool    `short:"S" long:"ssl" description:"Use https to connect the management api"`
	Metric      string  `short:"m" long:"metric" default:"mem_used" description:"Metric to check"`
	MetricLimit string  `short:"l" long:"metric_limit" default:"mem_limit" description:"Metric containing the limit of the checked metric"`
	Warning     string  `short:"w" long:"warning" default:"80" description:"Warning threshold in percent"`
	Critical    string  `short:"c" long:"critical" default:"90" description:"Critical threshold in percent"`
	Timeout     float64 `short:"t" long:"timeout" default:"0" description:"Request timeout in seconds, 0 disables the timeout"`
	PerfData    bool    `long:"perfdata" description:"Append performance data"`
	Details     bool    `short:"d" long:"details" description:"Append process, file descriptor and socket usage per node"`
	Config      string  `long:"config" no-ini:"true" description:"Read option defaults from this ini file"`
	Verbose     []bool  `short:"v" long:"verbose" no-ini:"true" description:"Increase log level, -v means debug, -vv means trace"`
	LogLevel    string  `long:"loglevel" default:"off" description:"Set log level to one of: off, error, info, debug, trace"`
	Version     bool    `short:"V" long:"version" no-ini:"true" description:"Print version and exit"`

	warning  *threshold.Threshold
	critical *threshold.Threshold
}

type configOpts struct {
	Config string `long:"config"`
}

func newParser(opts *nodeOpts) *flags.Parser {
	psr := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash) // default flags without flags.PrintErrors
	psr.Name = "check_rabbitmq_node"

	return psr
}

func parseArgs(args []string) (*nodeOpts, error) {
	opts := &nodeOpts{}
	psr := newParser(opts)
	args = sanitizeArgs(psr, args)

	cfg := &configOpts{}
	cfgPsr := flags.NewParser(cfg, flags.IgnoreUnknown|flags.PassDoubleDash)
	if _, err := cfgPsr.ParseArgs(args); err != nil {
		return opts, fmt.Errorf("parsing config option: %w", err)
	}
	if cfg.Config != "" {
		if err := flags.NewIniParser(psr).ParseFile(cfg.Config); err != nil {
			return opts, fmt.Errorf("reading config file %s: %w", cfg.Config, err)
		}
	}

	if _, err := psr.ParseArgs(args); err != nil {
		return opts, err
	}

	if err := opts.validate(); err != nil {
		return opts, err
	}

	return opts, nil
}

// sanitizeArgs rewrites single dash long options (-hostname) into their double dash form.
func sanitizeArgs(psr *flags.Parser, args []string) []string {
	replace := map[string]string{"-help": "--help"}
	addGroupOptions(psr.Groups(), replace)

	sanitized := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			sanitized = append(sanitized, args[i:]...)

			break
		}
		if r, ok := replace[arg]; ok {
			arg = r
		}
		for n, r := range replace {
			if strings.HasPrefix(arg, n+"=") {
				arg = r + "=" + strings.TrimPrefix(arg, n+"=")
			}
		}
		sanitized = append(sanitized, arg)
	}

	return sanitized
}

// addGroupOptions collects the long names of all options, including nested groups.
func addGroupOptions(groups []*flags.Group, replace map[string]string) {
	for _, grp := range groups {
		for _, opt := range grp.Options() {
			if len(opt.LongName) > 1 {
				replace["-"+opt.LongName] = "--" + opt.LongName
			}
		}
		addGroupOptions(grp.Groups(), replace)
	}
}

func (opts *nodeOpts) validate() error {
	if strings.TrimSpace(opts.Hostname) == "" {
		return fmt.Errorf("%w: hostname must not be empty", ErrInvalidOption)
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidOption, opts.Port)
	}
	if opts.Metric == "" || opts.MetricLimit == "" {
		return fmt.Errorf("%w: metric and metric_limit must not be empty", ErrInvalidOption)
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidOption)
	}

	var err error
	opts.warning, err = threshold.NewThreshold(opts.Warning)
	if err != nil {
		return fmt.Errorf("%w: warning threshold: %s", ErrInvalidOption, err.Error())
	}
	opts.critical, err = threshold.NewThreshold(opts.Critical)
	if err != nil {
		return fmt.Errorf("%w: critical threshold: %s", ErrInvalidOption, err.Error())
	}

	return nil
}

// logLevel returns the effective log level, -v flags win over --loglevel.
func (opts *nodeOpts) logLevel() string {
	switch {
	case len(opts.Verbose) >= 2:
		return "trace"
	case len(opts.Verbose) == 1:
		return "debug"
	}

	return opts.LogLevel
}

// URL returns the management api url for the configured node(s).
func (opts *nodeOpts) URL() string {
	scheme := "http"
	if opts.SSL {
		scheme = "https"
	}

	path := "/api/nodes"
	if opts.Node != "" {
		path += "/" + opts.Node
	}

	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(opts.Hostname, strconv.Itoa(opts.Port)),
		Path:   path,
	}

	return u.String()
}

func (opts *nodeOpts) evaluation() *Evaluation {
	return &Evaluation{
		Metric:      opts.Metric,
		MetricLimit: opts.MetricLimit,
		Warning:     opts.warning,
		Critical:    opts.critical,
	}
}
