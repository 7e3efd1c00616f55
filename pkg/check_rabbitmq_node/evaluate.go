package check_rabbitmq_node

import (
	"errors"
	"fmt"

	"github.com/mackerelio/checkers"

	"github.com/consol-monitoring/check_rabbitmq_node/pkg/threshold"
)

// ErrZeroLimit is returned if the limit metric of a node is zero
var ErrZeroLimit = errors.New("metric limit is zero")

// Evaluation compares metric/metric_limit of each node against the thresholds.
type Evaluation struct {
	Metric      string
	MetricLimit string
	Warning     *threshold.Threshold
	Critical    *threshold.Threshold
}

// NodeResult contains the evaluated usage of a single node.
type NodeResult struct {
	Name        string
	Metric      string
	MetricLimit string
	Value       float64
	Limit       float64
	Percent     float64
	Status      checkers.Status
	Record      Record

	thresholds *Evaluation
}

// String returns the output line for this node, ex.: rabbit@x: 21.52% mem_used/mem_limit
func (n NodeResult) String() string {
	return fmt.Sprintf("%s: %.2f%% %s/%s", n.Name, n.Percent, n.Metric, n.MetricLimit)
}

// Node evaluates a single node record.
func (e *Evaluation) Node(rec Record) (NodeResult, error) {
	value, err := rec.Float(e.Metric)
	if err != nil {
		return NodeResult{}, err
	}
	limit, err := rec.Float(e.MetricLimit)
	if err != nil {
		return NodeResult{}, err
	}
	if limit == 0 {
		return NodeResult{}, fmt.Errorf("%w: %s in node %s", ErrZeroLimit, e.MetricLimit, rec.Name())
	}

	percent := value / limit * 100

	return NodeResult{
		Name:        rec.Name(),
		Metric:      e.Metric,
		MetricLimit: e.MetricLimit,
		Value:       value,
		Limit:       limit,
		Percent:     percent,
		Status:      e.classify(percent),
		Record:      rec,
		thresholds:  e,
	}, nil
}

// Run folds all records into a single result. The first node which cannot be
// evaluated aborts the run, remaining nodes are not looked at.
func (e *Evaluation) Run(records []Record) (Result, error) {
	res := Result{Status: checkers.OK}
	for _, rec := range records {
		node, err := e.Node(rec)
		if err != nil {
			return Result{}, err
		}
		res = res.add(node)
	}

	return res, nil
}

func (e *Evaluation) classify(percent float64) checkers.Status {
	switch {
	case !e.Critical.CheckValue(percent):
		return checkers.CRITICAL
	case !e.Warning.CheckValue(percent):
		return checkers.WARNING
	}

	return checkers.OK
}
