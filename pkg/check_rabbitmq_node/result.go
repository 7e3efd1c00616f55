package check_rabbitmq_node

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mackerelio/checkers"

	"github.com/consol-monitoring/check_rabbitmq_node/pkg/convert"
)

var (
	zero    = float64(0)
	hundred = float64(100)
)

// auxiliaryMetrics are shown with --details as used/total pairs.
var auxiliaryMetrics = []struct {
	label string
	used  string
	total string
}{
	{"processes", "proc_used", "proc_total"},
	{"file descriptors", "fd_used", "fd_total"},
	{"sockets", "sockets_used", "sockets_total"},
}

// byteMetrics are rendered human readable in details.
var byteMetrics = map[string]bool{
	"mem_used":        true,
	"mem_limit":       true,
	"disk_free":       true,
	"disk_free_limit": true,
}

// Result is the outcome of evaluating all nodes.
type Result struct {
	Status checkers.Status
	Nodes  []NodeResult
}

// add returns a new result with node appended, the status never de-escalates.
func (r Result) add(node NodeResult) Result {
	nodes := make([]NodeResult, len(r.Nodes), len(r.Nodes)+1)
	copy(nodes, r.Nodes)
	nodes = append(nodes, node)

	status := r.Status
	if node.Status > status {
		status = node.Status
	}

	return Result{Status: status, Nodes: nodes}
}

// Output builds the plugin output without the leading status.
func (r Result) Output(perfData, details bool) string {
	lines := make([]string, 0, len(r.Nodes)*2)
	for _, node := range r.Nodes {
		lines = append(lines, node.String())
	}
	if len(lines) == 0 {
		return ""
	}

	if perfData {
		perf := make([]string, 0, len(r.Nodes)*2)
		for _, node := range r.Nodes {
			for _, m := range node.Metrics() {
				perf = append(perf, m.String())
			}
		}
		lines[0] = fmt.Sprintf("%s | %s", lines[0], strings.Join(perf, " "))
	}

	if details {
		for _, node := range r.Nodes {
			lines = append(lines, node.Details())
		}
	}

	return strings.Join(lines, "\n")
}

// Metrics returns the performance data of this node.
func (n NodeResult) Metrics() []*CheckMetric {
	return []*CheckMetric{
		{
			Name:     fmt.Sprintf("%s %s_pct", n.Name, n.Metric),
			Unit:     "%",
			Value:    math.Round(n.Percent*100) / 100,
			Warning:  n.threshold(true),
			Critical: n.threshold(false),
			Min:      &zero,
			Max:      &hundred,
		},
		{
			Name:  fmt.Sprintf("%s %s", n.Name, n.Metric),
			Value: n.Value,
			Min:   &zero,
			Max:   &n.Limit,
		},
	}
}

func (n NodeResult) threshold(warning bool) string {
	if n.thresholds == nil {
		return ""
	}

	th := n.thresholds.Critical
	if warning {
		th = n.thresholds.Warning
	}
	if th == nil {
		return ""
	}

	return th.String()
}

// Details returns the long output line with auxiliary node usage.
func (n NodeResult) Details() string {
	parts := []string{
		fmt.Sprintf("%s=%s", n.Metric, formatMetric(n.Metric, n.Value)),
		fmt.Sprintf("%s=%s", n.MetricLimit, formatMetric(n.MetricLimit, n.Limit)),
	}

	for _, aux := range auxiliaryMetrics {
		used, err := n.Record.Float(aux.used)
		if err != nil {
			continue
		}
		total, err := n.Record.Float(aux.total)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s/%s", aux.label, convert.Num2String(used), convert.Num2String(total)))
	}

	return fmt.Sprintf("%s: %s", n.Name, strings.Join(parts, ", "))
}

func formatMetric(name string, value float64) string {
	if byteMetrics[name] && value >= 0 && value < math.MaxUint64 {
		return humanize.IBytes(uint64(value))
	}

	return convert.Num2String(value)
}
