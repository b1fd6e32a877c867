package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/cyp0633/chronolight/calendar"
	"github.com/cyp0633/chronolight/schedule"
)

// FieldLayout describes one element of an encoded value
type FieldLayout struct {
	Name   string
	Index  int
	Kind   string // uint, array, list or optional
	Bits   int    // width of uint fields
	Min    string // nominal range, empty when unbounded
	Max    string
	Fields []FieldLayout
}

// Layout describes the wire structure of a calendar.DateTime,
// schedule.Item or schedule.Schedule
func Layout(v any) (FieldLayout, error) {
	var t reflect.Type
	var name string
	switch v.(type) {
	case calendar.DateTime, *calendar.DateTime:
		t, name = reflect.TypeOf(wireDateTime{}), "DateTime"
	case schedule.Item, *schedule.Item:
		t, name = reflect.TypeOf(wireItem{}), "Item"
	case schedule.Schedule, *schedule.Schedule:
		t, name = reflect.TypeOf(wireSchedule{}), "Schedule"
	default:
		return FieldLayout{}, fmt.Errorf("codec: no layout for %T", v)
	}

	root := describe(t)
	root.Name = name
	return root, nil
}

func describe(t reflect.Type) FieldLayout {
	switch t.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FieldLayout{Kind: "uint", Bits: t.Bits()}
	case reflect.Slice:
		return FieldLayout{Kind: "list", Fields: []FieldLayout{describe(t.Elem())}}
	case reflect.Pointer:
		return FieldLayout{Kind: "optional", Fields: []FieldLayout{describe(t.Elem())}}
	case reflect.Struct:
		layout := FieldLayout{Kind: "array"}
		index := 0
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Name == "_" {
				continue
			}
			field := describe(f.Type)
			field.Index = index
			tag := strings.Split(f.Tag.Get("layout"), ",")
			field.Name = tag[0]
			if len(tag) == 3 {
				field.Min, field.Max = tag[1], tag[2]
			}
			layout.Fields = append(layout.Fields, field)
			index++
		}
		return layout
	}
	return FieldLayout{Kind: t.Kind().String()}
}

// LayoutXML renders Layout(v) as an XML document
func LayoutXML(v any) (string, error) {
	root, err := Layout(v)
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	elem := doc.CreateElement("layout")
	elem.CreateAttr("type", root.Name)
	elem.CreateAttr("kind", root.Kind)
	for _, f := range root.Fields {
		writeField(elem, f)
	}

	doc.Indent(2)
	return doc.WriteToString()
}

func writeField(parent *etree.Element, f FieldLayout) {
	elem := parent.CreateElement("field")
	if f.Name != "" {
		elem.CreateAttr("name", f.Name)
		elem.CreateAttr("index", strconv.Itoa(f.Index))
	}
	elem.CreateAttr("kind", f.Kind)
	if f.Bits != 0 {
		elem.CreateAttr("bits", strconv.Itoa(f.Bits))
	}
	if f.Min != "" {
		elem.CreateAttr("min", f.Min)
		elem.CreateAttr("max", f.Max)
	}
	for _, child := range f.Fields {
		writeField(elem, child)
	}
}
