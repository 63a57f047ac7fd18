package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trafficdash/normalization"
)

// CameraClient queries the public unmanned-traffic-camera registry.
// One blocking request per operator action, no retry; the breaker only
// keeps a flapping upstream from being hammered across actions.
type CameraClient struct {
	serviceKey     string
	baseURL        string
	httpClient     *http.Client
	limiter        *rate.Limiter
	circuitBreaker *HTTPCircuitBreaker
}

// cameraAllowedRegulationTypes is the regulation-type allow-list. Types
// outside it (tailgating, bus lane, parking) are not enforcement cameras
// in the sense of this dashboard and are dropped.
var cameraAllowedRegulationTypes = map[string]bool{"1": true, "2": true}

// CameraDevice is one registry entry after filtering.
type CameraDevice struct {
	ManageNo        string `json:"manage_no"`
	RegulationType  string `json:"regulation_type"`
	Latitude        string `json:"latitude"`
	Longitude       string `json:"longitude"`
	SpeedLimit      string `json:"speed_limit"`
	InstallLocation string `json:"install_location"`
	Province        string `json:"province"`
	District        string `json:"district"`
}

type cameraAPIResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items []cameraAPIItem `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type cameraAPIItem struct {
	ManageNo   string `json:"mnlssRegltCameraManageNo"`
	Province   string `json:"ctprvnNm"`
	District   string `json:"signguNm"`
	RegltSe    string `json:"regltSe"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	SpeedLimit string `json:"lmttVe"`
	Location   string `json:"itlpc"`
}

// NewCameraClient creates a registry client.
func NewCameraClient(serviceKey, baseURL string, timeout, rateLimit time.Duration) *CameraClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxConnsPerHost:     5,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &CameraClient{
		serviceKey:     serviceKey,
		baseURL:        baseURL,
		limiter:        rate.NewLimiter(rate.Every(rateLimit), 1),
		circuitBreaker: NewHTTPCircuitBreaker(),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// FetchCameras queries the registry for one province, optionally narrowed
// to a district and a device-code prefix. The province name is alias
// corrected to the full official form before the request.
func (c *CameraClient) FetchCameras(ctx context.Context, province, district, deviceCode string) ([]CameraDevice, error) {
	if c.serviceKey == "" {
		return nil, fmt.Errorf("camera registry service key is not set")
	}
	if !c.circuitBreaker.CanProceed() {
		return nil, fmt.Errorf("camera registry is temporarily unavailable (circuit breaker open)")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait canceled: %w", err)
	}

	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("numOfRows", "1000")
	params.Set("pageNo", "1")
	params.Set("type", "json")
	params.Set("ctprvnNm", normalization.CorrectRegionName(province))
	if district != "" {
		params.Set("signguNm", district)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.circuitBreaker.RecordFailure()
		return nil, fmt.Errorf("camera registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.circuitBreaker.RecordFailure()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("camera registry returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed cameraAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.circuitBreaker.RecordFailure()
		return nil, fmt.Errorf("malformed camera registry response: %w", err)
	}
	c.circuitBreaker.RecordSuccess()

	devices := make([]CameraDevice, 0, len(parsed.Response.Body.Items))
	for _, item := range parsed.Response.Body.Items {
		if !cameraAllowedRegulationTypes[item.RegltSe] {
			continue
		}
		if deviceCode != "" && !strings.HasPrefix(item.ManageNo, deviceCode) {
			continue
		}
		devices = append(devices, CameraDevice{
			ManageNo:        item.ManageNo,
			RegulationType:  item.RegltSe,
			Latitude:        item.Latitude,
			Longitude:       item.Longitude,
			SpeedLimit:      item.SpeedLimit,
			InstallLocation: item.Location,
			Province:        item.Province,
			District:        item.District,
		})
	}
	return devices, nil
}
