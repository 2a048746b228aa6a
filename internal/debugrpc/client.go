package debugrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client is a thin wrapper over a grpc.ClientConn dialed against a
// Service, using wireCodec instead of protobuf.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a debugrpc Service listening at target. Callers
// needing TLS should pass their own grpc.WithTransportCredentials,
// which overrides the insecure default this applies first.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, opts...)
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Status queries nodeID's snapshot.
func (c *Client) Status(ctx context.Context, nodeID uint64) (*StatusResponse, error) {
	resp := new(StatusResponse)
	req := &StatusRequest{NodeID: nodeID}
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/Status", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListNodes queries every registered node id.
func (c *Client) ListNodes(ctx context.Context) (*ListNodesResponse, error) {
	resp := new(ListNodesResponse)
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/ListNodes", &ListNodesRequest{}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Properties queries the section-wide invariant checks.
func (c *Client) Properties(ctx context.Context) (*PropertiesResponse, error) {
	resp := new(PropertiesResponse)
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/Properties", &PropertiesRequest{}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
