// Package tracer wires the process-wide opentracing tracer to a jaeger agent
// Package tracer 将进程级 opentracing 追踪器接入 jaeger agent
package tracer

import (
	"io"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go/config"
)

// NewJaegerTracer builds a jaeger tracer reporting to agentHostPort and
// installs it as the opentracing global tracer. The returned closer flushes
// buffered spans and must be closed on shutdown.
// NewJaegerTracer 构建上报到 agentHostPort 的 jaeger 追踪器，
// 并将其设置为 opentracing 全局追踪器。返回的 closer 负责落盘缓冲的 span，
// 关闭服务时必须调用。
func NewJaegerTracer(serviceName, agentHostPort string) (opentracing.Tracer, io.Closer, error) {
	cfg := &config.Configuration{
		ServiceName: serviceName,
		Sampler: &config.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:            true,
			BufferFlushInterval: 1 * time.Second,
			LocalAgentHostPort:  agentHostPort,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, nil, err
	}

	opentracing.SetGlobalTracer(tracer)
	return tracer, closer, nil
}
