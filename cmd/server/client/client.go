// Package client provides commands for playing hexgame against a running
// server over gRPC
package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/handlers/hexgame/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Player flags shared by the game commands
	gameID   string
	playerID string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the hexgame API",
	Long:  `Client commands play a game by making real gRPC requests. Responses print as JSON.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	for _, cmd := range []*cobra.Command{stateCmd, moveCmd, playCardCmd, battleCmd, endTurnCmd} {
		cmd.Flags().StringVar(&gameID, "game", "", "game id")
		cmd.Flags().StringVar(&playerID, "player", "", "acting player id")
		_ = cmd.MarkFlagRequired("game")   // nolint:errcheck // flag is defined above
		_ = cmd.MarkFlagRequired("player") // nolint:errcheck // flag is defined above
	}

	ClientCmd.AddCommand(createGameCmd)
	ClientCmd.AddCommand(stateCmd)
	ClientCmd.AddCommand(moveCmd)
	ClientCmd.AddCommand(playCardCmd)
	ClientCmd.AddCommand(battleCmd)
	ClientCmd.AddCommand(endTurnCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createGameClient creates a game service client
func createGameClient() (v1alpha1.GameServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewGameServiceClient(conn), cleanup, nil
}

// call is a GameServiceClient method expression
type call func(v1alpha1.GameServiceClient, context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)

// send builds the request, calls the server and prints the response
func send(out io.Writer, fields map[string]any, fn call) error {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	client, cleanup, err := createGameClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(client, ctx, req)
	if err != nil {
		err = errors.FromGRPCError(err)
		return fmt.Errorf("%s: %s", errors.GetCode(err), errors.GetMessage(err))
	}

	return printResponse(out, resp)
}

func printResponse(out io.Writer, resp *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
