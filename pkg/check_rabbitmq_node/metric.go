package check_rabbitmq_node

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/consol-monitoring/check_rabbitmq_node/pkg/convert"
)

// CheckMetric contains a single performance value.
type CheckMetric struct {
	Name     string
	Unit     string
	Value    float64
	Warning  string
	Critical string
	Min      *float64
	Max      *float64
}

// String returns the metric in performance data format: 'label'=value[UOM];[warn];[crit];[min];[max]
func (m *CheckMetric) String() string {
	var res bytes.Buffer

	// single quotes in labels must be doubled
	name := strings.ReplaceAll(m.Name, "'", "''")
	res.WriteString(fmt.Sprintf("'%s'=%s%s", name, convert.Num2String(m.Value), m.Unit))

	res.WriteString(";")
	res.WriteString(m.Warning)

	res.WriteString(";")
	res.WriteString(m.Critical)

	res.WriteString(";")
	if m.Min != nil {
		res.WriteString(strconv.FormatFloat(*m.Min, 'f', -1, 64))
	}

	res.WriteString(";")
	if m.Max != nil {
		res.WriteString(strconv.FormatFloat(*m.Max, 'f', -1, 64))
	}

	resStr := res.String()
	// strip trailing semicolons
	for strings.HasSuffix(resStr, ";") {
		resStr = strings.TrimSuffix(resStr, ";")
	}

	return resStr
}
