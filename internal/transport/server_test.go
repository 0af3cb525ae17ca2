package transport

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	core "ticketcsv/internal/status"
	"ticketcsv/internal/transform"
)

func startBufconn(t *testing.T) *transform.GRPCClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(lis, transform.NewInProcessClient(transform.Defaults{}, core.Seeded(3)))
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Stop)

	cli, err := transform.NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })
	return cli
}

func TestServer_TransformRoundTrip(t *testing.T) {
	cli := startBufconn(t)
	ctx := context.Background()

	require.NoError(t, cli.Health(ctx))

	resp, err := cli.Transform(ctx, transform.Request{CSV: "id,status\n1,a\n2,b\n3,c\n4,d\n", Policy: "deterministic"})
	require.NoError(t, err)
	assert.Equal(t, "id,status\r\n1,PENDING\r\n2,CLOSED\r\n3,OPEN\r\n4,OPEN\r\n", resp.CSV)
	assert.Equal(t, 4, resp.Rows)
	assert.Equal(t, 2, resp.Counts["OPEN"])
}

func TestServer_MalformedIsInvalidArgument(t *testing.T) {
	cli := startBufconn(t)
	_, err := cli.Transform(context.Background(), transform.Request{CSV: "id,status\n1\n"})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_BlankInputIsEmptyReply(t *testing.T) {
	cli := startBufconn(t)
	resp, err := cli.Transform(context.Background(), transform.Request{CSV: ""})
	require.NoError(t, err)
	assert.Empty(t, resp.CSV)
}

func TestServer_ShortRowsPerRequest(t *testing.T) {
	cli := startBufconn(t)
	ctx := context.Background()
	in := "id,note,status\n1\n"

	_, err := cli.Transform(ctx, transform.Request{CSV: in, Policy: "deterministic"})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := cli.Transform(ctx, transform.Request{CSV: in, Policy: "deterministic", ShortRows: "pad"})
	require.NoError(t, err)
	assert.Equal(t, "id,note,status\r\n1,,OPEN\r\n", resp.CSV)

	_, err = cli.Transform(ctx, transform.Request{CSV: in, ShortRows: "truncate"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
