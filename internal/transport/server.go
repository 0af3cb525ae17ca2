package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/internal/logging"
	core "ticketcsv/internal/status"
	"ticketcsv/internal/transform"
)

type Server struct {
	grpc   *grpc.Server
	lis    net.Listener
	health *health.Server
}

func StartServer(port int, impl transform.Client) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	return NewServer(lis, impl), nil
}

// NewServer registers the StatusTransformer and the standard health service
// on lis; nothing is served until Serve.
func NewServer(lis net.Listener, impl transform.Client) *Server {
	s := &Server{
		grpc:   grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary)),
		lis:    lis,
		health: health.NewServer(),
	}
	apiv1.RegisterStatusTransformerServer(s.grpc, &transformer{impl: impl})
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus(apiv1.StatusTransformerService, healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *Server) Addr() net.Addr { return s.lis.Addr() }

func (s *Server) Serve() error {
	return s.grpc.Serve(s.lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
	_ = s.lis.Close()
}

// ----- services -----------------------------------------------------------

type transformer struct {
	impl transform.Client
}

func (t *transformer) Transform(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := apiv1.TransformRequestFromStruct(in)
	resp, err := t.impl.Transform(ctx, transform.Request{
		CSV:       req.CSVContent,
		Policy:    req.Policy,
		Column:    req.StatusColumn,
		ShortRows: req.ShortRows,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return (&apiv1.TransformReply{Data: resp.CSV, Rows: resp.Rows, Counts: resp.Counts}).ToStruct()
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, core.ErrMalformedInput),
		errors.Is(err, core.ErrSchemaMismatch),
		errors.Is(err, core.ErrUnknownPolicy),
		errors.Is(err, core.ErrUnknownShape):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logging.L().Info("grpc call", "method", info.FullMethod, "code", status.Code(err).String(), "took", time.Since(start))
	return resp, err
}
