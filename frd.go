/*
 * frd.go, part of frdvis.
 *
 * Copyright 2026 The frdvis developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//frd.go reads the ASCII result format of the CalculiX solver (cgx manual,
//chapter 11). The format is line-oriented: the first five columns of each line
//hold a record key that selects what the rest of the line, or the block it
//opens, means. Inside blocks, -1 starts a data row, -2 continues the previous
//row, -3 terminates the block, and -4/-5 describe a result field and its
//components.

package frdvis

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

//Options controls how tolerant the parser is with the parts of the format that
//CalculiX itself is sloppy about. With Strict set, a missing 9999 terminator
//and recognized-but-unsupported blocks become errors instead of warnings.
type Options struct {
	Strict bool
}

//ParseError is the error returned for any fatal problem in a result file. It
//fullfills Error and FileError, and carries the line number and record key of
//the offending record.
type ParseError struct {
	message  string
	filename string
	Line     int
	Key      string
	deco     []string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("frd file %s, line %d (record %q): %s", err.filename, err.Line, err.Key, err.message)
}

//Decorate adds new information to the error
func (err *ParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file that could not be parsed
func (err *ParseError) FileName() string { return err.filename }

//Critical returns true: parse errors abort the conversion of the file
func (err *ParseError) Critical() bool { return true }

//Result blocks are renamed to the shorter names used in the .inp file, as the
//viewers' users know them by those.
var inpNames = map[string]string{
	"DISP":     "U",
	"NDTEMP":   "NT",
	"STRESS":   "S",
	"TOSTRAIN": "E",
	"FORC":     "RF",
	"PE":       "PEEQ",
}

type parser struct {
	r        *bufio.Reader
	opts     Options
	filename string
	line     int     //number of the last line read
	pushed   *string //one line of lookahead
	nanInf   int     //per-block counters for collapsed warnings
	repaired int
}

//ReadFile parses the named FRD file into a Model.
func ReadFile(name string, opts ...Options) (*Model, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &ParseError{message: err.Error(), filename: name}
	}
	defer f.Close()
	m, err := read(f, name, opts...)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return m, nil
}

//Read parses an FRD stream into a Model.
func Read(r io.Reader, opts ...Options) (*Model, error) {
	m, err := read(r, "", opts...)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return m, nil
}

func read(r io.Reader, name string, opts ...Options) (*Model, error) {
	p := &parser{r: bufio.NewReader(r), filename: name}
	if len(opts) > 0 {
		p.opts = opts[0]
	}
	model := &Model{Mesh: NewMesh()}
	terminated := false
	skipping := false //eating the remains of an unsupported block
outer:
	for {
		line, err := p.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		key := recordKey(line)
		if skipping {
			if strings.HasPrefix(key, "-") {
				continue
			}
			skipping = false
		}
		switch key {
		case "", "1":
			//header, model name, parameter and user lines: nothing we need
		case "2":
			if err := p.readNodeBlock(line, model.Mesh); err != nil {
				return nil, err
			}
		case "3":
			if err := p.readElementBlock(line, model.Mesh); err != nil {
				return nil, err
			}
		case "100":
			if err := p.readResultBlock(line, model); err != nil {
				return nil, err
			}
		case "9999":
			terminated = true
			break outer
		default:
			if p.opts.Strict {
				return nil, p.errorf(key, "unrecognized record key")
			}
			log.Printf("frdvis: skipping unsupported record %q at line %d", key, p.line)
			skipping = true
		}
	}
	if !terminated {
		if p.opts.Strict {
			return nil, p.errorf("", "file ends without the 9999 terminator record")
		}
		log.Printf("frdvis: %s ends without the 9999 terminator record", p.filename)
	}
	return model, nil
}

//readLine returns the next line without its terminator, refusing non-ASCII
//content: binary FRD variants must fail clearly instead of being mis-parsed.
func (p *parser) readLine() (string, error) {
	if p.pushed != nil {
		line := *p.pushed
		p.pushed = nil
		return line, nil
	}
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", &ParseError{message: err.Error(), filename: p.filename, Line: p.line}
	}
	p.line++
	line = strings.TrimRight(line, "\r\n")
	for i := 0; i < len(line); i++ {
		if c := line[i]; c < ' ' && c != '\t' || c > '~' {
			return "", p.errorf("", "non-ASCII byte 0x%02x: binary FRD files are not supported", c)
		}
	}
	return line, nil
}

//unread pushes the line back so the next readLine returns it again.
func (p *parser) unread(line string) {
	p.pushed = &line
}

func (p *parser) errorf(key, format string, args ...interface{}) error {
	return &ParseError{
		message:  fmt.Sprintf(format, args...),
		filename: p.filename,
		Line:     p.line,
		Key:      key,
	}
}

//recordKey extracts the key from the first five columns of a line.
func recordKey(line string) string {
	if len(line) > 5 {
		line = line[:5]
	}
	return strings.TrimSpace(line)
}

//blockFormat returns the format code from the last column of a 2C/3C/100CL
//block header: 0 short ASCII, 1 long ASCII, 2 and up binary.
func blockFormat(line string) int {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 1
	}
	f, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 1
	}
	return f
}

//idWidth is the column width of entity numbers for a block format code.
func idWidth(format int) int {
	if format == 0 {
		return 5
	}
	return 10
}

//readNodeBlock reads a nodal point coordinate block (key 2). Each row is
//"-1", the node number in idw columns, and three coordinates in twelve fixed
//columns each. Coordinates may abut without whitespace, so slicing by position
//is the only safe way to split them.
func (p *parser) readNodeBlock(header string, mesh *Mesh) error {
	format := blockFormat(header)
	if format >= 2 {
		return p.errorf("2", "node block is binary (format code %d): binary FRD files are not supported", format)
	}
	idw := idWidth(format)
	for {
		line, err := p.readLine()
		if err == io.EOF {
			return p.errorf("2", "unexpected end of file inside the node block")
		}
		if err != nil {
			return err
		}
		s := strings.TrimSpace(line)
		if s == "" || s == "-3" {
			break
		}
		if !strings.HasPrefix(s, "-1") {
			return p.errorf(recordKey(line), "expected a -1 node record or the -3 terminator")
		}
		body := s[2:]
		if len(body) < idw+3*12 {
			return p.errorf("-1", "node record too short: %q", s)
		}
		id, err2 := strconv.Atoi(strings.TrimSpace(body[:idw]))
		if err2 != nil {
			return p.errorf("-1", "bad node number %q", body[:idw])
		}
		n := &Node{ID: id}
		for i := 0; i < 3; i++ {
			v, err2 := p.parseFloat(body[idw+12*i : idw+12*(i+1)])
			if err2 != nil {
				return p.errorf("-1", "node %d: bad coordinate %d: %v", id, i+1, err2)
			}
			n.Coords[i] = v
		}
		if err2 := mesh.AddNode(n); err2 != nil {
			return p.errorf("-1", "%v", err2)
		}
	}
	log.Printf("frdvis: %d nodes", len(mesh.Nodes))
	return nil
}

//readElementBlock reads an element definition block (key 3). A -1 row gives
//the element number and type; the node numbers follow on one or more -2
//continuation rows, idw columns each, until the type's node count is reached.
func (p *parser) readElementBlock(header string, mesh *Mesh) error {
	format := blockFormat(header)
	if format >= 2 {
		return p.errorf("3", "element block is binary (format code %d): binary FRD files are not supported", format)
	}
	idw := idWidth(format)
	var pending *Element
	want := 0
	flush := func() error {
		if pending == nil {
			return nil
		}
		if len(pending.Nodes) != want {
			return p.errorf("-2", "element %d: connectivity truncated, got %d of %d nodes", pending.ID, len(pending.Nodes), want)
		}
		if err := mesh.AddElement(pending); err != nil {
			return p.errorf("-1", "%v", err)
		}
		pending = nil
		return nil
	}
	for {
		line, err := p.readLine()
		if err == io.EOF {
			return p.errorf("3", "unexpected end of file inside the element block")
		}
		if err != nil {
			return err
		}
		s := strings.TrimSpace(line)
		if s == "" || s == "-3" {
			if err := flush(); err != nil {
				return err
			}
			break
		}
		switch {
		case strings.HasPrefix(s, "-1"):
			if err := flush(); err != nil {
				return err
			}
			body := s[2:]
			if len(body) < idw+5 {
				return p.errorf("-1", "element record too short: %q", s)
			}
			id, err2 := strconv.Atoi(strings.TrimSpace(body[:idw]))
			if err2 != nil {
				return p.errorf("-1", "bad element number %q", body[:idw])
			}
			etype, err2 := strconv.Atoi(strings.TrimSpace(body[idw : idw+5]))
			if err2 != nil {
				return p.errorf("-1", "element %d: bad type code %q", id, body[idw:idw+5])
			}
			n, ok := ElementNodeCount(etype)
			if !ok {
				return p.errorf("-1", "element %d: unknown element type code %d", id, etype)
			}
			pending = &Element{ID: id, Type: etype, Nodes: make([]int, 0, n)}
			want = n
		case strings.HasPrefix(s, "-2"):
			if pending == nil {
				return p.errorf("-2", "connectivity row without an element record")
			}
			body := s[2:]
			for pos := 0; pos < len(body); pos += idw {
				end := pos + idw
				if end > len(body) {
					end = len(body)
				}
				tok := strings.TrimSpace(body[pos:end])
				if tok == "" {
					continue
				}
				id, err2 := strconv.Atoi(tok)
				if err2 != nil {
					return p.errorf("-2", "element %d: bad node number %q", pending.ID, tok)
				}
				if len(pending.Nodes) == want {
					return p.errorf("-2", "element %d: more than the %d nodes of type %d", pending.ID, want, pending.Type)
				}
				pending.Nodes = append(pending.Nodes, id)
			}
		default:
			return p.errorf(recordKey(line), "expected a -1/-2 element record or the -3 terminator")
		}
	}
	log.Printf("frdvis: %d elements", len(mesh.Elements))
	return nil
}

//readResultBlock reads one nodal results block (key 100): the step header on
//the 100CL line itself, a -4 record naming the field, one -5 record per
//component, and then the value rows.
func (p *parser) readResultBlock(header string, model *Model) error {
	p.nanInf, p.repaired = 0, 0
	if len(header) < 24 {
		return p.errorf("100", "malformed step header: %q", header)
	}
	format := blockFormat(header)
	if format >= 2 {
		return p.errorf("100", "result block is binary (format code %d): binary FRD files are not supported", format)
	}
	idw := idWidth(format)
	body := header[12:] //skips "  100CL" and the load-case number
	tval, err := p.parseFloat(body[:12])
	if err != nil {
		return p.errorf("100", "bad step value %q: %v", body[:12], err)
	}
	fields := strings.Fields(body[12:])
	if len(fields) < 3 {
		return p.errorf("100", "malformed step header: %q", header)
	}
	stepNum, ok := leadingInt(fields[2])
	if !ok {
		return p.errorf("100", "bad step number %q", fields[2])
	}

	field, err := p.readFieldHeader()
	if err != nil {
		if p.opts.Strict {
			return err
		}
		//Recognized result block with a layout we do not understand: skip it
		//whole rather than give up on the file.
		log.Printf("frdvis: skipping result block at line %d: %v", p.line, err)
		return p.skipBlock()
	}
	if err := p.readResultRows(field, idw); err != nil {
		return err
	}

	step := model.stepFor(stepNum, tval)
	step.Fields = append(step.Fields, field)
	log.Printf("frdvis: step %d, time %g, %s, %d components, %d values",
		stepNum, tval, field.Name, field.Arity(), len(field.Values))
	return nil
}

//stepFor returns the step with the given number and time, appending a new one
//if the file had not mentioned it before. Steps keep file order.
func (M *Model) stepFor(num int, time float64) *Step {
	for _, s := range M.Steps {
		if s.Num == num && s.Time == time {
			return s
		}
	}
	s := &Step{Num: num, Time: time}
	M.Steps = append(M.Steps, s)
	return s
}

//readFieldHeader reads the -4 record and the -5 component records.
func (p *parser) readFieldHeader() (*Field, error) {
	line, err := p.readLine()
	if err == io.EOF {
		return nil, p.errorf("-4", "unexpected end of file inside a result block")
	}
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "-4") {
		p.unread(line)
		return nil, p.errorf(recordKey(line), "expected a -4 field record")
	}
	fields := strings.Fields(s[2:])
	if len(fields) < 2 {
		return nil, p.errorf("-4", "malformed field record: %q", s)
	}
	name := fields[0]
	ncomps := -1
	for _, tok := range fields[1:] {
		if n, err2 := strconv.Atoi(tok); err2 == nil {
			ncomps = n
			break
		}
	}
	if ncomps < 1 {
		return nil, p.errorf("-4", "field %s: no component count in %q", name, s)
	}
	if inp, ok := inpNames[name]; ok {
		name = inp
	}
	f := &Field{Name: name, Domain: Nodal, Values: map[int][]float64{}}
	for i := 0; i < ncomps; i++ {
		line, err := p.readLine()
		if err == io.EOF {
			return nil, p.errorf("-5", "unexpected end of file inside a result block")
		}
		if err != nil {
			return nil, err
		}
		s := strings.TrimSpace(line)
		if !strings.HasPrefix(s, "-5") {
			return nil, p.errorf(recordKey(line), "expected a -5 component record")
		}
		comps := strings.Fields(s[2:])
		if len(comps) == 0 {
			return nil, p.errorf("-5", "malformed component record: %q", s)
		}
		cname := comps[0]
		if strings.Contains(cname, "ALL") {
			//pseudo-component asking the viewer to compute a magnitude;
			//it carries no data rows.
			continue
		}
		//SXX -> XX, EYZ -> YZ: drop the dataset name from the component.
		cname = strings.TrimPrefix(cname, name)
		f.Components = append(f.Components, cname)
	}
	return f, nil
}

//readResultRows reads the -1/-2 value rows of a result block. A -1 row holds
//the node number and up to six values in twelve fixed columns each; further
//components of the same node continue on -2 rows with a blank number field.
//Rows for the same node may appear anywhere in the block; a later -1 row for a
//node restarts its component list.
func (p *parser) readResultRows(f *Field, idw int) error {
	ncomps := f.Arity()
	current := 0
	incomplete := 0
	for {
		line, err := p.readLine()
		if err == io.EOF {
			return p.errorf("100", "unexpected end of file inside a result block")
		}
		if err != nil {
			return err
		}
		s := strings.TrimSpace(line)
		if s == "" || s == "-3" {
			break
		}
		var vals []float64
		switch {
		case strings.HasPrefix(s, "-1"):
			body := s[2:]
			if len(body) < idw {
				return p.errorf("-1", "value record too short: %q", s)
			}
			id, err2 := strconv.Atoi(strings.TrimSpace(body[:idw]))
			if err2 != nil {
				return p.errorf("-1", "bad node number %q", body[:idw])
			}
			current = id
			vals = make([]float64, 0, ncomps)
			f.Values[current] = vals
			body = body[idw:]
			if err := p.appendRowValues(f, current, body, ncomps); err != nil {
				return err
			}
		case strings.HasPrefix(s, "-2"):
			if _, ok := f.Values[current]; !ok {
				return p.errorf("-2", "continuation row without a -1 value record")
			}
			body := s[2:]
			if len(body) > idw {
				body = body[idw:] //skip the blank number field
			} else {
				body = ""
			}
			if err := p.appendRowValues(f, current, body, ncomps); err != nil {
				return err
			}
		default:
			return p.errorf(recordKey(line), "expected a -1/-2 value record or the -3 terminator")
		}
	}
	//A node with less components than declared cannot be told apart from a
	//corrupt row. Drop it rather than invent values for it.
	for id, v := range f.Values {
		if len(v) != ncomps {
			delete(f.Values, id)
			incomplete++
		}
	}
	if incomplete > 0 {
		if p.opts.Strict {
			return p.errorf("-1", "%s: %d nodes with incomplete component sets", f.Name, incomplete)
		}
		log.Printf("frdvis: %s: dropped %d nodes with incomplete component sets", f.Name, incomplete)
	}
	if p.repaired > 0 {
		log.Printf("frdvis: %s: repaired %d numbers written without the exponent marker", f.Name, p.repaired)
	}
	if p.nanInf > 0 {
		log.Printf("frdvis: %s: %d NaN/Inf values in the file", f.Name, p.nanInf)
	}
	return nil
}

//appendRowValues slices one row's worth of values (at most six, twelve columns
//each) off body and appends them to the node's component list.
func (p *parser) appendRowValues(f *Field, node int, body string, ncomps int) error {
	have := len(f.Values[node])
	row := ncomps - have
	if row > 6 {
		row = 6
	}
	for c := 0; c < row; c++ {
		if 12*(c+1) > len(body) {
			return p.errorf("-1", "node %d: value row too short: %q", node, body)
		}
		v, err := p.parseFloat(body[12*c : 12*(c+1)])
		if err != nil {
			return p.errorf("-1", "node %d: bad value: %v", node, err)
		}
		f.Values[node] = append(f.Values[node], v)
	}
	return nil
}

//skipBlock consumes lines until the -3 terminator of the current block.
func (p *parser) skipBlock() error {
	for {
		line, err := p.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		s := strings.TrimSpace(line)
		if s == "-3" {
			return nil
		}
		if !strings.HasPrefix(s, "-") {
			p.unread(line)
			return nil
		}
	}
}

//parseFloat parses one fixed-column number, repairing the Fortran habit of
//dropping the exponent marker when the exponent needs three digits
//("-1.09934-104" means -1.09934E-104).
func (p *parser) parseFloat(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		if fixed, ok := repairExponent(t); ok {
			v, err = strconv.ParseFloat(fixed, 64)
			if err == nil {
				p.repaired++
				return v, nil
			}
		}
		return 0, fmt.Errorf("malformed number %q", t)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.nanInf++
	}
	return v, nil
}

//repairExponent reinserts the missing E in numbers like "5.39062-100". The
//sign must be preceded by a mantissa digit and followed only by digits.
func repairExponent(t string) (string, bool) {
	for i := len(t) - 1; i > 0; i-- {
		c := t[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if (c == '+' || c == '-') && i < len(t)-1 {
			prev := t[i-1]
			if prev >= '0' && prev <= '9' || prev == '.' {
				return t[:i] + "E" + t[i:], true
			}
		}
		return "", false
	}
	return "", false
}

//leadingInt parses the leading digits of a token like "2MODAL".
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}
