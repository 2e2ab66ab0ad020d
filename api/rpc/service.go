package rpc

import (
	"context"
	"fmt"

	"matchcore/domain/event"
	"matchcore/domain/intent"
	"matchcore/domain/orderbook"
	"matchcore/engine"
	"matchcore/eventsink"

	"google.golang.org/grpc"
)

// ProcessRequest is the wire request for the single unary RPC this
// facade exposes. Which fields are meaningful depends on Kind, mirroring
// the fact that each intent constructor takes a different subset of
// fields.
type ProcessRequest struct {
	Kind      string  `json:"kind"`
	OrderID   uint32  `json:"orderId"`
	Side      string  `json:"side,omitempty"`
	Qty       uint32  `json:"qty,omitempty"`
	Price     float64 `json:"price,omitempty"`
	StopPrice float64 `json:"stopPrice,omitempty"`
}

// WireEvent is the wire representation of one emitted event.
type WireEvent struct {
	Kind         string  `json:"kind"`
	OrderID      uint32  `json:"orderId,omitempty"`
	Qty          uint32  `json:"qty,omitempty"`
	Price        float64 `json:"price,omitempty"`
	FilledQty    uint32  `json:"filledQty,omitempty"`
	RemainingQty uint32  `json:"remainingQty,omitempty"`
}

// ProcessResponse carries every event Process caused, in publish
// order.
type ProcessResponse struct {
	Events []WireEvent `json:"events"`
}

// EngineServer is the handler-side interface the hand-written
// ServiceDesc below dispatches to, standing in for what protoc would
// otherwise generate.
type EngineServer interface {
	Process(context.Context, *ProcessRequest) (*ProcessResponse, error)
}

// Service adapts the engine facade to EngineServer. It taps the
// engine's own MemorySink to recover exactly the events one RPC call
// caused, without giving the RPC layer any privileged access to the
// engine's internals.
type Service struct {
	eng *engine.Engine
	rec *eventsink.MemorySink
}

// NewService builds a Service. rec must be one of the sinks the
// engine was constructed with (typically as one arm of a MultiSink)
// so that Process can observe what was just published.
func NewService(eng *engine.Engine, rec *eventsink.MemorySink) *Service {
	return &Service{eng: eng, rec: rec}
}

func (s *Service) Process(_ context.Context, req *ProcessRequest) (*ProcessResponse, error) {
	in, err := toIntent(req)
	if err != nil {
		return nil, err
	}

	before := len(s.rec.Events())
	if err := s.eng.Process(in); err != nil {
		return nil, err
	}
	after := s.rec.Events()

	resp := &ProcessResponse{}
	for _, e := range after[before:] {
		resp.Events = append(resp.Events, fromEvent(e))
	}
	return resp, nil
}

func toIntent(req *ProcessRequest) (intent.Intent, error) {
	switch req.Kind {
	case "ADD_LIMIT":
		side, err := toSide(req.Side)
		if err != nil {
			return nil, err
		}
		return intent.AddLimit{OrderID: req.OrderID, Side: side, Qty: req.Qty, Price: req.Price}, nil
	case "CANCEL":
		return intent.Cancel{OrderID: req.OrderID}, nil
	case "MARKET":
		side, err := toSide(req.Side)
		if err != nil {
			return nil, err
		}
		return intent.Market{OrderID: req.OrderID, Side: side, Qty: req.Qty}, nil
	case "STOP_LOSS":
		side, err := toSide(req.Side)
		if err != nil {
			return nil, err
		}
		return intent.StopLoss{OrderID: req.OrderID, Side: side, Qty: req.Qty, StopPrice: req.StopPrice}, nil
	default:
		return nil, fmt.Errorf("rpc: unrecognised intent kind %q", req.Kind)
	}
}

func toSide(s string) (orderbook.Side, error) {
	switch s {
	case "BUY":
		return orderbook.Buy, nil
	case "SELL":
		return orderbook.Sell, nil
	default:
		return 0, fmt.Errorf("rpc: unrecognised side %q", s)
	}
}

func fromEvent(e event.Event) WireEvent {
	switch v := e.(type) {
	case event.CancelAck:
		return WireEvent{Kind: "CANCEL_ACK", OrderID: v.OrderID}
	case event.Trade:
		return WireEvent{Kind: "TRADE", Qty: v.Qty, Price: v.Price}
	case event.OrderFullyFilled:
		return WireEvent{Kind: "ORDER_FULLY_FILLED", OrderID: v.OrderID}
	case event.OrderPartiallyFilled:
		return WireEvent{
			Kind:         "ORDER_PARTIALLY_FILLED",
			OrderID:      v.OrderID,
			FilledQty:    v.FilledQty,
			RemainingQty: v.RemainingQty,
		}
	default:
		return WireEvent{Kind: "UNKNOWN"}
	}
}

// RegisterEngineServer registers srv against gs using a hand-written
// ServiceDesc, standing in for the *_grpc.pb.go RegisterXServer
// function protoc would otherwise generate.
func RegisterEngineServer(gs *grpc.Server, srv EngineServer) {
	gs.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: "matchcore.Engine",
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Process",
			Handler:    processHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "matchcore/api/rpc/service.go",
}

func processHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(ProcessRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).Process(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/matchcore.Engine/Process"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EngineServer).Process(ctx, req.(*ProcessRequest))
	}
	return interceptor(ctx, req, info, handler)
}
