package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/catalog"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/registry"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/runtime"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/service"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/tasks"
)

const platformVersion = "1.0.0"

var (
	portFlag int
	hostFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the self-service platform",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := buildServer(cmd.Context())

			if err != nil {
				return err
			}

			log.Info("starting platform", "version", platformVersion, "host", hostFlag, "port", portFlag)

			return srv.Listen()
		},
	}
)

// buildServer wires the whole platform from configuration: catalog,
// engine, store, registry, task manager and HTTP surfaces.
func buildServer(ctx context.Context) (*service.Server, error) {
	v := viper.GetViper()

	cat := catalog.NewCatalog()
	catalog.RegisterBuiltinTools(cat)

	log.Info("tool catalog ready", "tools", cat.Names())

	engine, err := runtime.NewEngine(runtime.Config{
		Provider:      v.GetString("llm.provider"),
		OpenAIAPIKey:  v.GetString("llm.openai.api_key"),
		OpenAIBaseURL: v.GetString("llm.openai.base_url"),
		GoogleAPIKey:  v.GetString("llm.google.api_key"),
	})

	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx)

	if err != nil {
		return nil, err
	}

	baseURL := v.GetString("a2a.service_url")
	env := v.GetString("app.env")

	reg := registry.NewRegistry(store, registry.NewFactory(cat, engine), baseURL)
	sessions := runtime.NewSessionStore()
	manager := tasks.NewManager(tasks.NewMemoryStore(), reg, sessions)

	return service.NewServer(service.Config{
		Host:        hostFlag,
		Port:        portFlag,
		Environment: env,
		Version:     platformVersion,
		BaseURL:     baseURL,
		CardBaseURL: v.GetString(fmt.Sprintf("a2a.card_url.%s", env)),
	}, reg, manager, sessions), nil
}

// buildStore selects durable storage when an object-store endpoint is
// configured, otherwise the in-memory store. Failure to reach the durable
// store falls back to in-memory with a warning, so a developer setup
// works without any storage credentials.
func buildStore(ctx context.Context) (registry.AgentStore, error) {
	v := viper.GetViper()
	endpoint := v.GetString("storage.s3.endpoint")

	if endpoint == "" {
		log.Info("using in-memory agent store")
		return registry.NewMemoryStore(), nil
	}

	store, err := registry.NewS3Store(ctx, registry.S3Config{
		Endpoint:  endpoint,
		AccessKey: v.GetString("storage.s3.access_key"),
		SecretKey: v.GetString("storage.s3.secret_key"),
		Bucket:    v.GetString("storage.s3.bucket"),
		UseSSL:    v.GetBool("storage.s3.use_ssl"),
	})

	if err != nil {
		log.Warn("failed to initialize durable store, using in-memory", "error", err)
		return registry.NewMemoryStore(), nil
	}

	return store, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 8000, "Port to serve on")
	serveCmd.Flags().StringVarP(&hostFlag, "host", "H", "0.0.0.0", "Host address to bind to")
}

var longServe = `
Run the self-service platform, exposing the management API under /api/v1
and the A2A protocol under /a2a.

Examples:
  # Serve on the default port
  a2a-selfservice serve

  # Serve on port 8080
  a2a-selfservice serve --port 8080
`
