package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chileviz/pkg/errors"
)

var yearHeader = regexp.MustCompile(`^\d{4}$`)

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	r.Comma = sniffComma(data)
	return r.ReadAll()
}

// sniffComma picks ';' for spreadsheets exported with a Spanish locale.
func sniffComma(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// fromTable decodes a header row plus one row per region.
func fromTable(rows [][]string, doc *Document) error {
	if len(rows) == 0 {
		return errors.InvalidInput("table is empty")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	regionCol := -1
	for i, h := range header {
		if h == "region" || h == "región" {
			regionCol = i
		}
	}
	if regionCol < 0 {
		return errors.MissingKey("column", "region")
	}

	for n, row := range rows[1:] {
		line := n + 2
		if isBlank(row) {
			continue
		}
		var rec Record
		for i, h := range header {
			if i >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			if err := setCell(&rec, h, cell); err != nil {
				return fmt.Errorf("row %d, column %q: %w", line, h, err)
			}
		}
		doc.Records = append(doc.Records, rec)
	}
	return nil
}

func setCell(rec *Record, header, cell string) error {
	switch header {
	case "region", "región":
		rec.Region = cell
	case "etiqueta":
		rec.Label = cell
	case "codigo", "código":
		rec.Code = cell
	case string(AttrArea):
		return setFloat(&rec.Area, cell)
	case string(AttrPopulation), "población":
		return setFloat(&rec.Population, cell)
	case string(AttrPercent):
		return setFloat(&rec.Percent, cell)
	case string(AttrEmigrants):
		return setFloat(&rec.Emigrants, cell)
	case "destinos":
		dests, err := parseDestinations(cell)
		if err != nil {
			return err
		}
		rec.Destinations = dests
	default:
		if !yearHeader.MatchString(header) {
			return nil
		}
		v, err := parseNumber(cell)
		if err != nil {
			return err
		}
		if rec.Births == nil {
			rec.Births = make(map[string]float64)
		}
		rec.Births[header] = v
	}
	return nil
}

func setFloat(dst **float64, cell string) error {
	v, err := parseNumber(cell)
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

// parseNumber accepts "1234.5", "1234,5" and "1.234,5".
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.InvalidInput("not a number: %q", s)
	}
	return v, nil
}

// parseDestinations reads "Metropolitana:26.6;Tarapacá:13.5".
func parseDestinations(cell string) ([]Destination, error) {
	var out []Destination
	for _, part := range strings.Split(cell, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.LastIndex(part, ":")
		if i <= 0 {
			return nil, errors.InvalidInput("destination %q must be written as Region:percent", part)
		}
		pct, err := parseNumber(strings.TrimSpace(part[i+1:]))
		if err != nil {
			return nil, err
		}
		out = append(out, Destination{Region: strings.TrimSpace(part[:i]), Percent: pct})
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
