// Package client provides commands that call a running Build API server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/build-api/internal/handlers/build/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the Build API",
	Long:  `Client commands call a running Build API server and print the JSON response.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Document commands
	ClientCmd.AddCommand(loadDocumentCmd)
	ClientCmd.AddCommand(getDocumentCmd)
	ClientCmd.AddCommand(listDocumentsCmd)

	// Build commands
	ClientCmd.AddCommand(createBuildCmd)
	ClientCmd.AddCommand(getBuildCmd)
	ClientCmd.AddCommand(deleteBuildCmd)
	ClientCmd.AddCommand(exportBuildCmd)
	ClientCmd.AddCommand(importBuildCmd)

	// Selection commands
	ClientCmd.AddCommand(selectOptionCmd)
	ClientCmd.AddCommand(deselectOptionCmd)
	ClientCmd.AddCommand(rollOptionCmd)
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

// call invokes a method with the given request fields and prints the response
func call(cmd *cobra.Command, method string, fields map[string]any) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := v1alpha1.NewClient(conn).Call(ctx, method, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	return printResponse(cmd.OutOrStdout(), resp)
}

func printResponse(w io.Writer, resp *structpb.Struct) error {
	raw, err := protojson.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	// protojson output is deliberately unstable, re-indent for humans
	var pretty any
	if err := json.Unmarshal(raw, &pretty); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	data, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
