// Package check_rabbitmq_node implements a monitoring plugin which checks the
// resource usage of RabbitMQ nodes through the management api.
//
// For each node the configured metric is divided by its limit metric
// (mem_used/mem_limit by default) and the resulting percentage is compared
// against the warning and critical thresholds. The worst state over all nodes
// becomes the plugin state.
package check_rabbitmq_node

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/kdar/factorlog"
	"github.com/mackerelio/checkers"
)

const (
	// NAME contains the plugin name.
	NAME = "check_rabbitmq_node"

	// VERSION contains the actual plugin version.
	VERSION = "1.0.0"

	// ExitCodeUsage is used for invalid command line options.
	ExitCodeUsage = 64
)

// Build contains the git commit id, set from main.
var Build string

// Check runs the plugin, prints the plugin output to output and returns the exit code.
func Check(ctx context.Context, output io.Writer, args []string) int {
	return run(ctx, output, os.Stderr, &http.Client{}, args)
}

func run(ctx context.Context, output, logOutput io.Writer, client *http.Client, args []string) int {
	opts, err := parseArgs(args)
	if opts.Version {
		fmt.Fprintf(output, "%s\n", versionString())

		return int(checkers.OK)
	}
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			fmt.Fprintf(output, "%s\n", err.Error())

			return int(checkers.UNKNOWN)
		}
		fmt.Fprintf(output, "%s\nsee --help for usage.\n", err.Error())

		return ExitCodeUsage
	}

	log, err := newLogger(logOutput, opts.logLevel())
	if err != nil {
		fmt.Fprintf(output, "%s\n", err.Error())

		return ExitCodeUsage
	}

	ckr := opts.run(ctx, client, log)
	fmt.Fprintf(output, "%s %s\n", ckr.Status, strings.TrimSpace(ckr.Message))

	return int(ckr.Status)
}

func (opts *nodeOpts) run(ctx context.Context, client *http.Client, log *factorlog.FactorLog) *checkers.Checker {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.Timeout*float64(time.Second)))
		defer cancel()
	}

	records, err := fetchNodes(ctx, client, log, opts)
	if err != nil {
		log.Errorf("%s", err.Error())

		return checkers.NewChecker(checkers.UNKNOWN, err.Error())
	}

	res, err := opts.evaluation().Run(records)
	if err != nil {
		log.Errorf("%s", err.Error())

		return checkers.NewChecker(checkers.UNKNOWN, err.Error())
	}
	log.Debugf("evaluated %d node(s), state: %s", len(res.Nodes), res.Status)

	return checkers.NewChecker(res.Status, res.Output(opts.PerfData, opts.Details))
}

func versionString() string {
	build := Build
	if build == "" {
		build = "unknown"
	}

	return fmt.Sprintf("%s v%s (Build: %s)", NAME, VERSION, build)
}
