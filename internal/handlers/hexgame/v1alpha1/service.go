package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "hexgame.api.v1alpha1.GameService"

// Full method names
const (
	GameServiceCreateGameFullMethodName         = "/" + ServiceName + "/CreateGame"
	GameServiceGetStateFullMethodName           = "/" + ServiceName + "/GetState"
	GameServiceMoveFullMethodName               = "/" + ServiceName + "/Move"
	GameServicePlayCardFullMethodName           = "/" + ServiceName + "/PlayCard"
	GameServiceSubmitBattleActionFullMethodName = "/" + ServiceName + "/SubmitBattleAction"
	GameServiceEndTurnFullMethodName            = "/" + ServiceName + "/EndTurn"
)

// GameServiceServer is the server API. Requests and responses are
// JSON-shaped google.protobuf.Struct messages.
type GameServiceServer interface {
	CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Move(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlayCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitBattleAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndTurn(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GameServiceDesc describes the service for grpc.Server registration
var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateGame",
			Handler:    unaryHandler(GameServiceCreateGameFullMethodName, GameServiceServer.CreateGame),
		},
		{
			MethodName: "GetState",
			Handler:    unaryHandler(GameServiceGetStateFullMethodName, GameServiceServer.GetState),
		},
		{
			MethodName: "Move",
			Handler:    unaryHandler(GameServiceMoveFullMethodName, GameServiceServer.Move),
		},
		{
			MethodName: "PlayCard",
			Handler:    unaryHandler(GameServicePlayCardFullMethodName, GameServiceServer.PlayCard),
		},
		{
			MethodName: "SubmitBattleAction",
			Handler:    unaryHandler(GameServiceSubmitBattleActionFullMethodName, GameServiceServer.SubmitBattleAction),
		},
		{
			MethodName: "EndTurn",
			Handler:    unaryHandler(GameServiceEndTurnFullMethodName, GameServiceServer.EndTurn),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hexgame/api/v1alpha1/game.proto",
}

// RegisterGameServiceServer registers the handler on a gRPC server
func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

// GameServiceClient is the client API for GameService
type GameServiceClient interface {
	CreateGame(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Move(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PlayCard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SubmitBattleAction(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	EndTurn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type gameServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewGameServiceClient creates a client on an open connection
func NewGameServiceClient(cc grpc.ClientConnInterface) GameServiceClient {
	return &gameServiceClient{cc: cc}
}

func (c *gameServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) CreateGame(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GameServiceCreateGameFullMethodName, in, opts...)
}

func (c *gameServiceClient) GetState(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GameServiceGetStateFullMethodName, in, opts...)
}

func (c *gameServiceClient) Move(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GameServiceMoveFullMethodName, in, opts...)
}

func (c *gameServiceClient) PlayCard(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GameServicePlayCardFullMethodName, in, opts...)
}

func (c *gameServiceClient) SubmitBattleAction(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GameServiceSubmitBattleActionFullMethodName, in, opts...)
}

func (c *gameServiceClient) EndTurn(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GameServiceEndTurnFullMethodName, in, opts...)
}
