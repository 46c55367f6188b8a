package batch

import (
	"fmt"

	"github.com/dunamismax/pngwebp/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry        *prometheus.Registry
	imagesFound     prometheus.Counter
	imagesConverted prometheus.Counter
	imagesResized   prometheus.Counter
	sourceBytes     prometheus.Counter
	outputBytes     prometheus.Counter
	bytesSaved      prometheus.Counter
	runDuration     *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		imagesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pngwebp_images_found_total",
			Help: "PNG images discovered in the source directory.",
		}),
		imagesConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pngwebp_images_converted_total",
			Help: "Images successfully written as WebP.",
		}),
		imagesResized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pngwebp_images_resized_total",
			Help: "Converted images that were downscaled to the max width.",
		}),
		sourceBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pngwebp_source_bytes_total",
			Help: "Bytes read from converted source PNGs.",
		}),
		outputBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pngwebp_output_bytes_total",
			Help: "Bytes written as WebP.",
		}),
		bytesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pngwebp_bytes_saved_total",
			Help: "Bytes saved across converted images, never negative per image.",
		}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pngwebp_run_duration_seconds",
			Help:    "Wall time of a batch run by final status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		m.imagesFound,
		m.imagesConverted,
		m.imagesResized,
		m.sourceBytes,
		m.outputBytes,
		m.bytesSaved,
		m.runDuration,
	)
	return m
}

func (m *metrics) observe(res domain.Result) {
	m.imagesConverted.Inc()
	if res.Resized {
		m.imagesResized.Inc()
	}
	m.sourceBytes.Add(float64(res.Source.Bytes))
	m.outputBytes.Add(float64(res.Dest.Bytes))
	if saved := res.BytesSaved(); saved > 0 {
		m.bytesSaved.Add(float64(saved))
	}
}

func (m *metrics) writeTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
