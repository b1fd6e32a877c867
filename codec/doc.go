/*
Package codec serializes dates and schedules.

CBOR is the binary form. Values are encoded as fixed-position arrays with
Core Deterministic Encoding, so equal schedules always encode to identical
bytes:

	DateTime  [year, month, day, hour, minute, second, ms]
	Item      [unit, multiplier]
	Schedule  [start, [item...], end / null]

YAML is the editable form used by schedule files. Layout and LayoutXML
describe the CBOR structure, field widths included, for consumers written in
other languages.
*/
package codec
