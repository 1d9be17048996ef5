// Package telemetry exports game traces to Honeycomb over OTLP/HTTP.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "typecity"
	serviceVersion = "0.1.0"

	honeycombEndpoint = "https://api.honeycomb.io"
	defaultDataset    = "typecity"
)

// Session describes one run of the game. It becomes the trace resource, so
// every span from the process can be grouped by session and game rules.
type Session struct {
	ID            string
	DaysToSurvive int
	Buildings     int // Building types in the loaded catalog
	Keys          int // Keys on the keyboard layout
}

// ConfigureHoneycomb maps the game's Honeycomb variables onto the standard
// OTEL_* exporter variables. getenv and setenv are usually os.Getenv and
// os.Setenv. It reports whether an API key was found.
func ConfigureHoneycomb(getenv func(string) string, setenv func(string, string) error) bool {
	setenv("OTEL_EXPORTER_OTLP_ENDPOINT", honeycombEndpoint)

	apiKey := getenv("HONEYCOMB_TYPECITY_API_KEY")
	if apiKey == "" {
		return false
	}
	dataset := getenv("HONEYCOMB_TYPECITY_DATASET")
	if dataset == "" {
		dataset = defaultDataset
	}
	// Built here because .env files may hold an unexpanded reference to the key.
	setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}

// Setup registers a global tracer provider exporting over OTLP/HTTP, as
// configured by the OTEL_* environment. The returned function flushes and
// stops the exporter.
func Setup(ctx context.Context, session Session) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, session)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource builds the trace resource. It is not merged with
// resource.Default() to avoid schema URL conflicts.
func newResource(ctx context.Context, session Session) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("session.id", session.ID),
			attribute.Int("game.days_to_survive", session.DaysToSurvive),
			attribute.Int("game.buildings", session.Buildings),
			attribute.Int("game.keys", session.Keys),
			attribute.String("host.name", hostname()),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("typecity/" + name)
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
