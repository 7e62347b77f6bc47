package hotresque

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Serializer is the outer codec applied to every stored entry.
type Serializer interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

var (
	JSON    Serializer = jsonSerializer{}
	Msgpack Serializer = msgpackSerializer{}
	YAML    Serializer = yamlSerializer{}

	// Raw passes strings and byte slices through unchanged and formats
	// integers, floats and bools the way go-redis writes them.
	Raw Serializer = rawSerializer{}
)

// SerializerByName resolves "json", "msgpack", "yaml" or "raw".
func SerializerByName(name string) (Serializer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON, nil
	case "msgpack":
		return Msgpack, nil
	case "yaml":
		return YAML, nil
	case "raw", "none":
		return Raw, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSerializer, name)
}

func isRaw(s Serializer) bool {
	if s == nil {
		return true
	}
	_, ok := s.(rawSerializer)
	return ok
}

type jsonSerializer struct{}

func (jsonSerializer) Encode(v any) ([]byte, error)    { return json.Marshal(v) }
func (jsonSerializer) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackSerializer struct{}

func (msgpackSerializer) Encode(v any) ([]byte, error)    { return msgpack.Marshal(v) }
func (msgpackSerializer) Decode(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

type yamlSerializer struct{}

func (yamlSerializer) Encode(v any) ([]byte, error)    { return yaml.Marshal(v) }
func (yamlSerializer) Decode(data []byte, v any) error { return yaml.Unmarshal(data, v) }

type rawSerializer struct{}

func (rawSerializer) Encode(v any) ([]byte, error) {
	switch t := v.(type) {
	case string:
		return []byte(t), nil
	case []byte:
		return append([]byte(nil), t...), nil
	case int:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int8:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(t), 10), nil
	case int64:
		return strconv.AppendInt(nil, t, 10), nil
	case uint:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint8:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint16:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint32:
		return strconv.AppendUint(nil, uint64(t), 10), nil
	case uint64:
		return strconv.AppendUint(nil, t, 10), nil
	case float32:
		return strconv.AppendFloat(nil, float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.AppendFloat(nil, t, 'f', -1, 64), nil
	case bool:
		// same wire form go-redis writes for bool arguments
		if t {
			return []byte("1"), nil
		}
		return []byte("0"), nil
	}
	return nil, fmt.Errorf("hotresque: raw serializer cannot encode %T", v)
}

func (rawSerializer) Decode(data []byte, v any) error {
	switch t := v.(type) {
	case *[]byte:
		*t = append(make([]byte, 0, len(data)), data...)
	case *string:
		*t = string(data)
	default:
		return fmt.Errorf("hotresque: raw serializer cannot decode into %T", v)
	}
	return nil
}
