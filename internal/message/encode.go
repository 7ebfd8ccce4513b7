package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"gopkg.in/yaml.v3"

	"ircmsg/internal/components"
)

// wireSource is the structured form of a prefix: either Server or the
// nick/user/host triple. User and Host are nil when their delimiter is
// absent and point to "" when it is present with nothing after it.
type wireSource struct {
	Nick   string  `json:"nick,omitempty" yaml:"nick,omitempty" msgpack:"nick,omitempty"`
	User   *string `json:"user,omitempty" yaml:"user,omitempty" msgpack:"user,omitempty"`
	Host   *string `json:"host,omitempty" yaml:"host,omitempty" msgpack:"host,omitempty"`
	Server string `json:"server,omitempty" yaml:"server,omitempty" msgpack:"server,omitempty"`
}

type wireParams struct {
	Middles  []string `json:"middles" yaml:"middles" msgpack:"middles"`
	Trailing *string  `json:"trailing,omitempty" yaml:"trailing,omitempty" msgpack:"trailing,omitempty"`
}

var errBadShape = errors.New("expected a raw line string or a message object")

func sourceToWire(s components.Source) wireSource {
	if s.IsServer() {
		return wireSource{Server: s.Name}
	}
	w := wireSource{Nick: s.Name}
	if s.HasUser() {
		w.User = &s.User
	}
	if s.HasHost() {
		w.Host = &s.Host
	}
	return w
}

func (w *wireSource) apply(b *Builder) {
	if w == nil {
		return
	}
	if w.Server != "" {
		b.Source(w.Server)
		return
	}
	raw := w.Nick
	if w.User != nil {
		raw += "!" + *w.User
	}
	if w.Host != nil {
		raw += "@" + *w.Host
	}
	b.Source(raw)
}

// paramsToWire returns nil when there is nothing to encode.
func paramsToWire(p components.Params) *wireParams {
	if p.IsEmpty() {
		return nil
	}
	w := &wireParams{Middles: make([]string, 0, p.MiddleCount())}
	for m := range p.Middles() {
		w.Middles = append(w.Middles, m)
	}
	if t, ok := p.Trailing(); ok {
		w.Trailing = &t
	}
	return w
}

func (w *wireParams) apply(b *Builder) {
	if w == nil {
		return
	}
	b.Params(w.Middles...)
	if w.Trailing != nil {
		b.Trailing(*w.Trailing)
	}
}

// ---- JSON ----

// MarshalJSON writes the object form. Tags keep their order; a tag
// without a value is written as null.
func (m Message) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if tags, ok := m.Tags(); ok {
		buf.WriteString(`"tags":{`)
		first := true
		for tag := range tags.All() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			writeJSON(&buf, tag.Key)
			buf.WriteByte(':')
			if tag.HasValue {
				writeJSON(&buf, tag.Unescaped())
			} else {
				buf.WriteString("null")
			}
		}
		buf.WriteString("},")
	}
	if src, ok := m.Source(); ok {
		buf.WriteString(`"source":`)
		writeJSON(&buf, sourceToWire(src))
		buf.WriteByte(',')
	}
	buf.WriteString(`"command":`)
	writeJSON(&buf, m.Command().Raw())
	if p := paramsToWire(m.Params()); p != nil {
		buf.WriteString(`,"params":`)
		writeJSON(&buf, p)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSON encodes values that cannot fail to marshal (strings and the
// wire structs).
func writeJSON(buf *bytes.Buffer, v any) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	// Encoder terminates every value with '\n'.
	buf.Truncate(buf.Len() - 1)
}

// UnmarshalJSON accepts either a JSON string with the raw line or the
// object form written by MarshalJSON.
func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("message: %w", errBadShape)
	}
	if data[0] == '"' {
		var line string
		if err := json.Unmarshal(data, &line); err != nil {
			return fmt.Errorf("message: %w", err)
		}
		*m = Parse(line)
		return nil
	}

	var obj struct {
		Tags    json.RawMessage `json:"tags"`
		Source  *wireSource     `json:"source"`
		Command string          `json:"command"`
		Params  *wireParams     `json:"params"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("message: %w", err)
	}
	b := NewBuilder(obj.Command)
	if err := decodeJSONTags(obj.Tags, b); err != nil {
		return fmt.Errorf("message: tags: %w", err)
	}
	obj.Source.apply(b)
	obj.Params.apply(b)

	msg, err := b.Message()
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	*m = msg
	return nil
}

// decodeJSONTags walks the tags object token by token to keep key order.
func decodeJSONTags(raw json.RawMessage, b *Builder) error {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		var value *string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if value == nil {
			b.TagFlag(key)
		} else {
			b.Tag(key, *value)
		}
	}
	_, err = dec.Token()
	return err
}

// ---- YAML ----

// MarshalYAML returns a mapping node so that tag order survives.
func (m Message) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		root.Content = append(root.Content, strNode(key), value)
	}

	if tags, ok := m.Tags(); ok {
		node := &yaml.Node{Kind: yaml.MappingNode}
		for tag := range tags.All() {
			value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
			if tag.HasValue {
				value = strNode(tag.Unescaped())
			}
			node.Content = append(node.Content, strNode(tag.Key), value)
		}
		add("tags", node)
	}
	if src, ok := m.Source(); ok {
		node := &yaml.Node{}
		if err := node.Encode(sourceToWire(src)); err != nil {
			return nil, err
		}
		add("source", node)
	}
	add("command", strNode(m.Command().Raw()))
	if p := paramsToWire(m.Params()); p != nil {
		node := &yaml.Node{}
		if err := node.Encode(p); err != nil {
			return nil, err
		}
		add("params", node)
	}
	return root, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// UnmarshalYAML accepts a scalar raw line or the mapping form.
func (m *Message) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*m = Parse(value.Value)
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("message: line %d: %w", value.Line, errBadShape)
	}

	var (
		b      = NewBuilder("")
		source *wireSource
		params *wireParams
	)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i].Value, value.Content[i+1]
		switch key {
		case "tags":
			if val.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				k, v := val.Content[j].Value, val.Content[j+1]
				if v.ShortTag() == "!!null" {
					b.TagFlag(k)
				} else {
					b.Tag(k, v.Value)
				}
			}
		case "source":
			source = &wireSource{}
			if err := val.Decode(source); err != nil {
				return fmt.Errorf("message: source: %w", err)
			}
		case "command":
			b.command = val.Value
		case "params":
			params = &wireParams{}
			if err := val.Decode(params); err != nil {
				return fmt.Errorf("message: params: %w", err)
			}
		}
	}
	source.apply(b)
	params.apply(b)

	msg, err := b.Message()
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	*m = msg
	return nil
}

// ---- msgpack ----

var (
	_ msgpack.CustomEncoder = Message{}
	_ msgpack.CustomDecoder = (*Message)(nil)
)

// EncodeMsgpack writes the same map layout as MarshalJSON.
func (m Message) EncodeMsgpack(enc *msgpack.Encoder) error {
	tags, hasTags := m.Tags()
	src, hasSource := m.Source()
	params := paramsToWire(m.Params())

	n := 1
	if hasTags {
		n++
	}
	if hasSource {
		n++
	}
	if params != nil {
		n++
	}
	if err := enc.EncodeMapLen(n); err != nil {
		return err
	}

	if hasTags {
		if err := enc.EncodeString("tags"); err != nil {
			return err
		}
		if err := enc.EncodeMapLen(tags.Len()); err != nil {
			return err
		}
		for tag := range tags.All() {
			if err := enc.EncodeString(tag.Key); err != nil {
				return err
			}
			var err error
			if tag.HasValue {
				err = enc.EncodeString(tag.Unescaped())
			} else {
				err = enc.EncodeNil()
			}
			if err != nil {
				return err
			}
		}
	}
	if hasSource {
		if err := enc.EncodeString("source"); err != nil {
			return err
		}
		if err := enc.Encode(sourceToWire(src)); err != nil {
			return err
		}
	}
	if err := enc.EncodeString("command"); err != nil {
		return err
	}
	if err := enc.EncodeString(m.Command().Raw()); err != nil {
		return err
	}
	if params != nil {
		if err := enc.EncodeString("params"); err != nil {
			return err
		}
		if err := enc.Encode(params); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack accepts a raw line string or the map form.
func (m *Message) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if msgpcode.IsString(code) {
		line, err := dec.DecodeString()
		if err != nil {
			return err
		}
		*m = Parse(line)
		return nil
	}

	n, err := dec.DecodeMapLen()
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	var (
		b      = NewBuilder("")
		source *wireSource
		params *wireParams
	)
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return fmt.Errorf("message: %w", err)
		}
		switch key {
		case "tags":
			if err := decodeMsgpackTags(dec, b); err != nil {
				return fmt.Errorf("message: tags: %w", err)
			}
		case "source":
			source = &wireSource{}
			err = dec.Decode(source)
		case "command":
			b.command, err = dec.DecodeString()
		case "params":
			params = &wireParams{}
			err = dec.Decode(params)
		default:
			err = dec.Skip()
		}
		if err != nil {
			return fmt.Errorf("message: %s: %w", key, err)
		}
	}
	source.apply(b)
	params.apply(b)

	msg, err := b.Message()
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}
	*m = msg
	return nil
}

func decodeMsgpackTags(dec *msgpack.Decoder, b *Builder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}
		code, err := dec.PeekCode()
		if err != nil {
			return err
		}
		if code == msgpcode.Nil {
			if err := dec.DecodeNil(); err != nil {
				return err
			}
			b.TagFlag(key)
			continue
		}
		value, err := dec.DecodeString()
		if err != nil {
			return err
		}
		b.Tag(key, value)
	}
	return nil
}
