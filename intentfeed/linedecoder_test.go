package intentfeed

import (
	"strings"
	"testing"

	"matchcore/domain/intent"
	"matchcore/domain/orderbook"
)

func TestDecodeLineAddLimit(t *testing.T) {
	d := NewLineDecoder(nil)
	in, ok := d.DecodeLine("0,100000,1,1,1075")
	if !ok {
		t.Fatalf("DecodeLine returned ok=false for a well-formed AddLimit line")
	}
	want := intent.AddLimit{OrderID: 100000, Side: orderbook.Sell, Qty: 1, Price: 1075}
	if in != want {
		t.Fatalf("DecodeLine = %+v, want %+v", in, want)
	}
}

func TestDecodeLineCancel(t *testing.T) {
	d := NewLineDecoder(nil)
	in, ok := d.DecodeLine("1,100004")
	if !ok {
		t.Fatalf("DecodeLine returned ok=false for a well-formed Cancel line")
	}
	if in != (intent.Cancel{OrderID: 100004}) {
		t.Fatalf("DecodeLine = %+v, want Cancel{100004}", in)
	}
}

func TestDecodeLineMarketAndStopLoss(t *testing.T) {
	d := NewLineDecoder(nil)

	in, ok := d.DecodeLine("5,100009,1,3")
	if !ok || in != (intent.Market{OrderID: 100009, Side: orderbook.Sell, Qty: 3}) {
		t.Fatalf("DecodeLine(Market) = %+v, %v", in, ok)
	}

	in, ok = d.DecodeLine("6,100011,1,30,1000")
	if !ok || in != (intent.StopLoss{OrderID: 100011, Side: orderbook.Sell, Qty: 30, StopPrice: 1000}) {
		t.Fatalf("DecodeLine(StopLoss) = %+v, %v", in, ok)
	}
}

func TestDecodeLineStripsTrailingComment(t *testing.T) {
	d := NewLineDecoder(nil)
	in, ok := d.DecodeLine("1,100004 // cancel resting order")
	if !ok || in != (intent.Cancel{OrderID: 100004}) {
		t.Fatalf("DecodeLine with trailing comment = %+v, %v", in, ok)
	}
}

func TestDecodeLineBlankAndCommentOnlyLinesSkipped(t *testing.T) {
	d := NewLineDecoder(nil)
	for _, line := range []string{"", "   ", "// just a comment"} {
		if _, ok := d.DecodeLine(line); ok {
			t.Fatalf("DecodeLine(%q) = ok, want skipped", line)
		}
	}
}

// TestDecodeLineMalformedLinesSkipped exercises the BADMESSAGE class
// of malformed input: a recognised leading code with the wrong field
// count, an unparseable leading code, an unparseable orderId, or an
// unrecognised side code must be skipped, not treated as a fatal error.
func TestDecodeLineMalformedLinesSkipped(t *testing.T) {
	d := NewLineDecoder(nil)
	cases := []string{
		"0,100000,1,1",       // AddLimit missing price
		"1",                  // Cancel missing orderId
		"5,100009,1",         // Market missing qty
		"6,100011,1,30",      // StopLoss missing stopPrice
		"BADMESSAGE",         // unparseable leading code
		"0,notanumber,1,1,5", // unparseable orderId
		"0,1,9,1,5",          // unrecognised side code
	}
	for _, line := range cases {
		if _, ok := d.DecodeLine(line); ok {
			t.Fatalf("DecodeLine(%q) = ok, want skipped", line)
		}
	}
}

func TestDecodeLineUnrecognisedLeadingCodeSkipped(t *testing.T) {
	d := NewLineDecoder(nil)
	if _, ok := d.DecodeLine("99,1,2,3"); ok {
		t.Fatalf("DecodeLine with unrecognised code = ok, want skipped")
	}
}

func TestStreamInvokesCallbackForEachDecodableLine(t *testing.T) {
	d := NewLineDecoder(nil)
	input := strings.Join([]string{
		"0,1,0,5,100",
		"BADMESSAGE",
		"1,1",
		"",
	}, "\n")

	var got []intent.Intent
	err := d.Stream(strings.NewReader(input), func(in intent.Intent) {
		got = append(got, in)
	})
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Stream invoked callback %d times, want 2", len(got))
	}
	if got[0] != (intent.AddLimit{OrderID: 1, Side: orderbook.Buy, Qty: 5, Price: 100}) {
		t.Fatalf("first decoded intent = %+v", got[0])
	}
	if got[1] != (intent.Cancel{OrderID: 1}) {
		t.Fatalf("second decoded intent = %+v", got[1])
	}
}
