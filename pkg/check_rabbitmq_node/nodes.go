package check_rabbitmq_node

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/consol-monitoring/check_rabbitmq_node/pkg/convert"
)

var (
	// ErrDecode is returned if the management api response is not usable json
	ErrDecode = errors.New("cannot decode response")

	// ErrFieldMissing is returned if a node does not contain the requested metric
	ErrFieldMissing = errors.New("could not find metric")

	// ErrFieldNotNumeric is returned if a node metric is not a number
	ErrFieldNotNumeric = errors.New("metric is not numeric")
)

// UnknownNodeName is used for nodes without name attribute.
const UnknownNodeName = "Unknown"

var json = jsoniter.Config{
	EscapeHTML: true,
	UseNumber:  true,
}.Froze()

// Record contains a single node as returned by the management api.
type Record map[string]interface{}

// Name returns the node name or "Unknown".
func (r Record) Name() string {
	raw, ok := r["name"]
	if !ok || raw == nil {
		return UnknownNodeName
	}

	name := fmt.Sprintf("%v", raw)
	if name == "" {
		return UnknownNodeName
	}

	return name
}

// Float returns the given field as number.
func (r Record) Float(field string) (float64, error) {
	raw, ok := r[field]
	if !ok {
		return 0, fmt.Errorf("%w %s in node %s", ErrFieldMissing, field, r.Name())
	}

	num, err := convert.Float64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s in node %s (%v)", ErrFieldNotNumeric, field, r.Name(), raw)
	}

	return num, nil
}

// decodeNodes reads either a single node object or a list of node objects.
func decodeNodes(body io.Reader) ([]Record, error) {
	dec := json.NewDecoder(body)

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty response", ErrDecode)
		}

		return nil, fmt.Errorf("%w: %s", ErrDecode, err.Error())
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after json document", ErrDecode)
	}

	switch val := raw.(type) {
	case map[string]interface{}:
		return []Record{val}, nil
	case []interface{}:
		if len(val) == 0 {
			return nil, fmt.Errorf("%w: no nodes found", ErrDecode)
		}
		records := make([]Record, 0, len(val))
		for i, entry := range val {
			node, ok := entry.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: node #%d is %T, expected object", ErrDecode, i, entry)
			}
			records = append(records, node)
		}

		return records, nil
	default:
		return nil, fmt.Errorf("%w: expected node object or list, got %T", ErrDecode, raw)
	}
}
