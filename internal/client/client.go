package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"wundercam-cli/internal/state"
	"wundercam-cli/pkg/models"
)

// DefaultCameraIP is where the S1 sits on its own access point network.
const DefaultCameraIP = "192.168.100.1"

// requestTimeout bounds every request to the camera. The control service is
// single threaded and can misbehave under concurrent load, so all calls are
// sequential and a timed out request simply fails.
const requestTimeout = 5 * time.Second

// Control command ids consumed directly by the client. The writable setting
// commands live in the state package next to their validation.
const (
	cmdReadSDCard = 3
	cmdTrigger    = 24
)

// fullReadCommands covers every known read group. A full state read issues
// one request per entry, in this order, and merges the responses.
var fullReadCommands = []int{3, 37, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}

// WunderClient talks to the two services the camera exposes: the
// fcgi_client.cgi control endpoint and the NGINX file space under /DCIM/.
// All calls are blocking request-response; nothing is retried or run
// concurrently against the same device.
type WunderClient struct {
	http       *resty.Client
	cameraIP   string
	controlURI string
	fileURI    string
	state      *state.CamState
	log        zerolog.Logger
}

// New builds a client for the camera at the given IP. No request is made
// until Discover or an explicit operation.
func New(cameraIP string, logger zerolog.Logger) *WunderClient {
	if cameraIP == "" {
		cameraIP = DefaultCameraIP
	}

	r := resty.New()
	r.SetTimeout(requestTimeout)

	return &WunderClient{
		http:       r,
		cameraIP:   cameraIP,
		controlURI: fmt.Sprintf("http://%s/fcgi_client.cgi", cameraIP),
		fileURI:    fmt.Sprintf("http://%s/DCIM/", cameraIP),
		state:      state.New(),
		log:        logger,
	}
}

// CameraIP returns the IP the client was built with.
func (c *WunderClient) CameraIP() string { return c.cameraIP }

// FileURI returns the root of the camera's file space.
func (c *WunderClient) FileURI() string { return c.fileURI }

// State returns the last observed device state.
func (c *WunderClient) State() *state.CamState { return c.state }

// Prepare returns an editable state view with an empty pending set.
func (c *WunderClient) Prepare() *state.EditableState { return c.state.Prepare() }

// control issues one command against the control service and decodes the
// JSON object it answers with. Success is strictly HTTP 200.
func (c *WunderClient) control(cmd int, params map[string]int) (map[string]interface{}, error) {
	req := c.http.R().SetQueryParam("cmd", strconv.Itoa(cmd))
	for key, value := range params {
		req.SetQueryParam(key, strconv.Itoa(value))
	}

	c.log.Debug().Int("cmd", cmd).Msg("control request")

	resp, err := req.Get(c.controlURI)
	if err != nil {
		return nil, c.classify(c.controlURI, err)
	}
	if resp.StatusCode() != 200 {
		return nil, &TransferError{URI: c.controlURI, Status: resp.StatusCode()}
	}

	var data map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decoding response to command %d: %w", cmd, err)
	}
	return data, nil
}

// classify splits transport failures into the timeout and connection kinds
// so callers can branch on them.
func (c *WunderClient) classify(uri string, err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{URI: uri, Err: err}
	}
	return &ConnectionError{URI: uri, Err: err}
}

// Discover checks that both camera services are alive and the SD card is
// usable, then performs an initial full state read. The control service is
// live when the SD card read answers with a non-empty object; the file
// service is live when a deliberately invalid path answers 404.
func (c *WunderClient) Discover() error {
	sdCard, err := c.control(cmdReadSDCard, nil)
	if err != nil {
		return err
	}
	controlLive := len(sdCard) > 0

	resp, err := c.http.R().Get(c.fileURI + "img/")
	if err != nil {
		return c.classify(c.fileURI+"img/", err)
	}
	fileLive := resp.StatusCode() == 404

	if !controlLive || !fileLive {
		return &CameraNotFoundError{IP: c.cameraIP}
	}

	probe := state.FromData(sdCard)
	if flag, ok := probe.SDCardPlugFlag(); !ok || flag != models.SDCardReady {
		return &SDCardError{Flag: flag}
	}

	full, err := c.FullRead()
	if err != nil {
		return err
	}
	c.state = full

	c.log.Info().Str("ip", c.cameraIP).Msg("camera discovered")
	return nil
}
