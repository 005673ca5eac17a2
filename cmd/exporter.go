package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"wundercam-cli/internal/client"
	"wundercam-cli/internal/logging"
	"wundercam-cli/pkg/models"
)

// Variables to hold flag values
var (
	expIP         string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.WunderClient
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Initial discovery
	log.Println("Probing camera...")
	if err := p.api.Discover(); err != nil {
		log.Printf("Fatal: camera discovery failed: %v", err)
		// Exit so the service manager attempts a restart once the camera
		// network is back.
		os.Exit(1)
	}
	log.Println("Camera discovered.")

	// 2. Setup Prometheus
	registry := prometheus.NewRegistry()
	collector := &WunderCollector{Client: p.api}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Wundercam Exporter listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR LOGIC ---

// WunderCollector scrapes the camera's full state on every Prometheus
// scrape. A full read is several sequential requests against a single
// threaded control service, so scrapes are serialized by the mutex.
type WunderCollector struct {
	Client *client.WunderClient
	Mutex  sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"wundercam_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"wundercam_scrape_duration_seconds", "Time taken to read the camera state.", nil, nil,
	)
	batteryDesc = prometheus.NewDesc(
		"wundercam_battery_grid", "Battery charge indicator (0..6).", []string{"serial"}, nil,
	)
	chargingDesc = prometheus.NewDesc(
		"wundercam_charging", "Whether the battery is charging.", []string{"serial"}, nil,
	)
	sdCardDesc = prometheus.NewDesc(
		"wundercam_sd_card_status", "SD card state (0 absent, 1 plugged, 2 ready).", []string{"serial"}, nil,
	)
	remainPicturesDesc = prometheus.NewDesc(
		"wundercam_remaining_pictures", "Pictures left on the SD card.", []string{"serial"}, nil,
	)
	remainVideoDesc = prometheus.NewDesc(
		"wundercam_remaining_video_minutes", "Video recording minutes left.", []string{"serial"}, nil,
	)
	capacityDesc = prometheus.NewDesc(
		"wundercam_capacity", "SD card capacity as reported by the camera.", []string{"serial"}, nil,
	)
	errorCodeDesc = prometheus.NewDesc(
		"wundercam_error_code", "The camera's own error register.", []string{"serial"}, nil,
	)
	shootModeDesc = prometheus.NewDesc(
		"wundercam_shoot_mode", "Currently configured shoot mode.", []string{"serial", "mode"}, nil,
	)
)

func (c *WunderCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- batteryDesc
	ch <- chargingDesc
	ch <- sdCardDesc
	ch <- remainPicturesDesc
	ch <- remainVideoDesc
	ch <- capacityDesc
	ch <- errorCodeDesc
	ch <- shootModeDesc
}

func (c *WunderCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0

	st, err := c.Client.FullRead()
	if err != nil {
		log.Printf("Error reading camera state: %v", err)
		success = 0.0
	} else {
		serial, _ := st.SerialNumber()
		if serial == "" {
			serial = "unknown"
		}

		if battery, ok := st.BatteryGrid(); ok {
			ch <- prometheus.MustNewConstMetric(batteryDesc, prometheus.GaugeValue, float64(battery), serial)
		}
		if charging, ok := st.ChargeFlag(); ok {
			ch <- prometheus.MustNewConstMetric(chargingDesc, prometheus.GaugeValue, float64(charging), serial)
		}
		if flag, ok := st.SDCardPlugFlag(); ok {
			ch <- prometheus.MustNewConstMetric(sdCardDesc, prometheus.GaugeValue, float64(flag), serial)
		}
		if num, ok := st.RemainNum(); ok {
			ch <- prometheus.MustNewConstMetric(remainPicturesDesc, prometheus.GaugeValue, float64(num), serial)
		}
		if minutes, ok := st.RemainTime(); ok {
			ch <- prometheus.MustNewConstMetric(remainVideoDesc, prometheus.GaugeValue, float64(minutes), serial)
		}
		if capacity, ok := st.Capacity(); ok {
			ch <- prometheus.MustNewConstMetric(capacityDesc, prometheus.GaugeValue, float64(capacity), serial)
		}
		if code, ok := st.ErrorCode(); ok {
			ch <- prometheus.MustNewConstMetric(errorCodeDesc, prometheus.GaugeValue, float64(code), serial)
		}
		if mode, ok := st.ShootMode(); ok {
			ch <- prometheus.MustNewConstMetric(shootModeDesc, prometheus.GaugeValue, float64(mode),
				serial, models.ShootModeName(mode))
		}
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes camera telemetry
(battery, SD card, remaining shots) as Prometheus metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "wundercam-exporter",
			DisplayName: "Wundercam Prometheus Exporter",
			Description: "Exposes Wunder 360 S1 telemetry to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--camera", expIP,
				"--port", expPort,
			},
		}

		prg := &program{
			api: client.New(expIP, logging.New("wundercam-exporter", debugLog)),
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 2. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 3. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when
		// run interactively without flags
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expIP, "camera", client.DefaultCameraIP, "Camera IP address")
	exporterCmd.Flags().StringVar(&expPort, "port", "9365", "Port to listen on")

	// Flag for Service Control
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
