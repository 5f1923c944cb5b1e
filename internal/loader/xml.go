package loader

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/resourcekit/internal/container"
)

type xmlContainer struct {
	XMLName    xml.Name     `xml:"container"`
	Parameters []xmlValue   `xml:"parameters>parameter"`
	Services   []xmlService `xml:"services>service"`
}

// xmlValue is both <parameter> and <argument>: a scalar, a service
// reference (type="service") or a collection (type="collection").
type xmlValue struct {
	Key        string     `xml:"key,attr"`
	Type       string     `xml:"type,attr"`
	ID         string     `xml:"id,attr"`
	Text       string     `xml:",chardata"`
	Parameters []xmlValue `xml:"parameter"`
	Arguments  []xmlValue `xml:"argument"`
}

type xmlService struct {
	ID        string     `xml:"id,attr"`
	Class     string     `xml:"class,attr"`
	Alias     string     `xml:"alias,attr"`
	Abstract  bool       `xml:"abstract,attr"`
	Arguments []xmlValue `xml:"argument"`
	Tags      []xmlTag   `xml:"tag"`
}

type xmlTag struct {
	Name  string     `xml:"name,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
}

func decodeXML(filename string, src []byte) (*File, error) {
	var doc xmlContainer
	if err := xml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("loader: failed to parse %s: %w", filename, err)
	}

	out := &File{
		Parameters: make(map[string]any, len(doc.Parameters)),
		Aliases:    make(map[string]string),
	}
	for i, p := range doc.Parameters {
		if p.Key == "" {
			return nil, fmt.Errorf("loader: %s: parameter #%d has no key", filename, i)
		}
		v, err := p.value()
		if err != nil {
			return nil, fmt.Errorf("loader: %s: parameter %q: %w", filename, p.Key, err)
		}
		out.Parameters[p.Key] = v
	}

	for i, svc := range doc.Services {
		if svc.ID == "" {
			return nil, fmt.Errorf("loader: %s: service #%d has no id", filename, i)
		}
		if svc.Alias != "" {
			out.Aliases[svc.ID] = svc.Alias
			continue
		}

		def := &container.Definition{ID: svc.ID, Class: svc.Class, Abstract: svc.Abstract}
		for _, arg := range svc.Arguments {
			v, err := arg.value()
			if err != nil {
				return nil, fmt.Errorf("loader: %s: service %q: %w", filename, svc.ID, err)
			}
			def.Arguments = append(def.Arguments, v)
		}
		for _, tag := range svc.Tags {
			if tag.Name == "" {
				return nil, fmt.Errorf("loader: %s: service %q: tag without name", filename, svc.ID)
			}
			attrs := make(map[string]string, len(tag.Attrs))
			for _, a := range tag.Attrs {
				attrs[a.Name.Local] = a.Value
			}
			def.AddTag(tag.Name, attrs)
		}
		out.Services = append(out.Services, def)
	}
	return out, nil
}

func (v xmlValue) value() (any, error) {
	switch v.Type {
	case "service":
		if v.ID == "" {
			return nil, fmt.Errorf("service reference without id")
		}
		return "@" + v.ID, nil
	case "collection":
		return v.collection()
	case "string":
		return v.Text, nil
	case "":
		return phpize(strings.TrimSpace(v.Text)), nil
	default:
		return nil, fmt.Errorf("unknown value type %q", v.Type)
	}
}

// collection returns a map when every child carries a key, a list otherwise.
func (v xmlValue) collection() (any, error) {
	children := v.Parameters
	if len(children) == 0 {
		children = v.Arguments
	}

	keyed := len(children) > 0
	for _, c := range children {
		if c.Key == "" {
			keyed = false
			break
		}
	}

	if keyed {
		out := make(map[string]any, len(children))
		for _, c := range children {
			item, err := c.value()
			if err != nil {
				return nil, err
			}
			out[c.Key] = item
		}
		return out, nil
	}

	out := make([]any, 0, len(children))
	for _, c := range children {
		item, err := c.value()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// phpize turns untyped XML text into bool, int or float when it reads as one.
func phpize(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
