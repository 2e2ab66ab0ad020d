// Package intentfeed decodes intents from their wire representation: a
// line-based text format, and, as an alternate transport for the same
// format, a Kafka consumer.
package intentfeed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"matchcore/domain/intent"
	"matchcore/domain/orderbook"

	"go.uber.org/zap"
)

// LineDecoder parses the comma-separated, leading-code line format. It
// holds no mutable state beyond its logger, so a single instance may
// be shared across an entire run as a plain stateless value rather
// than a global singleton.
type LineDecoder struct {
	log *zap.Logger
}

func NewLineDecoder(log *zap.Logger) *LineDecoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &LineDecoder{log: log}
}

// DecodeLine parses one line into an Intent. ok is false for a blank
// line, a malformed line (unparseable leading code, wrong field count,
// bad number or side code), or a line whose leading code isn't
// recognised; in every case the caller should skip the line rather
// than treat it as an error that halts the stream.
func (d *LineDecoder) DecodeLine(line string) (in intent.Intent, ok bool) {
	line = stripComment(line)
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	code, err := strconv.Atoi(fields[0])
	if err != nil {
		d.log.Warn("unparseable leading code, skipping line", zap.String("line", line), zap.Error(err))
		return nil, false
	}

	parsed, err := d.decodeFields(code, fields[1:])
	if err != nil {
		d.log.Warn("malformed intent line, skipping", zap.String("line", line), zap.Error(err))
		return nil, false
	}
	if parsed == nil {
		d.log.Warn("unrecognised leading code, skipping line", zap.String("line", line), zap.Int("code", code))
		return nil, false
	}
	return parsed, true
}

func (d *LineDecoder) decodeFields(code int, f []string) (intent.Intent, error) {
	switch code {
	case 0: // AddLimit: orderId, side, qty, price
		if len(f) != 4 {
			return nil, fmt.Errorf("AddLimit wants 4 fields, got %d", len(f))
		}
		id, side, err := parseIDSide(f[0], f[1])
		if err != nil {
			return nil, err
		}
		qty, err := parseUint32(f[2])
		if err != nil {
			return nil, err
		}
		price, err := parseFloat(f[3])
		if err != nil {
			return nil, err
		}
		return intent.AddLimit{OrderID: id, Side: side, Qty: qty, Price: price}, nil

	case 1: // Cancel: orderId
		if len(f) != 1 {
			return nil, fmt.Errorf("Cancel wants 1 field, got %d", len(f))
		}
		id, err := parseUint32(f[0])
		if err != nil {
			return nil, err
		}
		return intent.Cancel{OrderID: id}, nil

	case 5: // Market: orderId, side, qty
		if len(f) != 3 {
			return nil, fmt.Errorf("Market wants 3 fields, got %d", len(f))
		}
		id, side, err := parseIDSide(f[0], f[1])
		if err != nil {
			return nil, err
		}
		qty, err := parseUint32(f[2])
		if err != nil {
			return nil, err
		}
		return intent.Market{OrderID: id, Side: side, Qty: qty}, nil

	case 6: // StopLoss: orderId, side, qty, stopPrice
		if len(f) != 4 {
			return nil, fmt.Errorf("StopLoss wants 4 fields, got %d", len(f))
		}
		id, side, err := parseIDSide(f[0], f[1])
		if err != nil {
			return nil, err
		}
		qty, err := parseUint32(f[2])
		if err != nil {
			return nil, err
		}
		stopPrice, err := parseFloat(f[3])
		if err != nil {
			return nil, err
		}
		return intent.StopLoss{OrderID: id, Side: side, Qty: qty, StopPrice: stopPrice}, nil

	default:
		return nil, nil
	}
}

func parseIDSide(idField, sideField string) (uint32, orderbook.Side, error) {
	id, err := parseUint32(idField)
	if err != nil {
		return 0, 0, err
	}
	sideCode, err := strconv.Atoi(sideField)
	if err != nil {
		return 0, 0, fmt.Errorf("bad side code %q: %w", sideField, err)
	}
	switch sideCode {
	case 0:
		return id, orderbook.Buy, nil
	case 1:
		return id, orderbook.Sell, nil
	default:
		return 0, 0, fmt.Errorf("unrecognised side code %d", sideCode)
	}
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad integer %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q: %w", s, err)
	}
	return v, nil
}

// stripComment removes a trailing "// ..." comment from a non-empty
// line, mirroring the original parser's comment-stripping behaviour
// without needing a regular expression for this simple case.
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return line
	}
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// Stream reads newline-delimited intent lines from r, invoking fn for
// every successfully decoded intent in order. It never returns an
// error for malformed or unrecognised lines — those are logged and
// skipped — only for a read failure on r itself.
func (d *LineDecoder) Stream(r io.Reader, fn func(intent.Intent)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if in, ok := d.DecodeLine(scanner.Text()); ok {
			fn(in)
		}
	}
	return scanner.Err()
}
