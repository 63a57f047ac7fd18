package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cameraFixture = `{
	"response": {
		"header": {"resultCode": "00", "resultMsg": "NORMAL_SERVICE"},
		"body": {"items": [
			{"mnlssRegltCameraManageNo": "F0001", "ctprvnNm": "서울특별시", "signguNm": "강남구",
			 "regltSe": "1", "latitude": "37.4979", "longitude": "127.0276", "lmttVe": "60", "itlpc": "강남대로 123"},
			{"mnlssRegltCameraManageNo": "F0002", "ctprvnNm": "서울특별시", "signguNm": "강남구",
			 "regltSe": "2", "latitude": "37.5172", "longitude": "127.0473", "lmttVe": "50", "itlpc": "테헤란로 5"},
			{"mnlssRegltCameraManageNo": "F0003", "ctprvnNm": "서울특별시", "signguNm": "강남구",
			 "regltSe": "4", "latitude": "37.5000", "longitude": "127.0300", "lmttVe": "", "itlpc": "주정차단속 지점"}
		]}
	}
}`

func newTestClient(url string) *CameraClient {
	return NewCameraClient("test-key", url, 5*time.Second, time.Millisecond)
}

func TestFetchCameras_FiltersRegulationTypesAndCorrectsRegion(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cameraFixture))
	}))
	defer srv.Close()

	devices, err := newTestClient(srv.URL).FetchCameras(context.Background(), "서울", "강남구", "")
	require.NoError(t, err)

	require.Len(t, devices, 2, "regulation type 4 must be dropped")
	assert.Equal(t, "F0001", devices[0].ManageNo)
	assert.Equal(t, "F0002", devices[1].ManageNo)

	assert.Equal(t, "서울특별시", gotQuery["ctprvnNm"][0], "abbreviated province must be alias corrected")
	assert.Equal(t, "강남구", gotQuery["signguNm"][0])
	assert.Equal(t, "json", gotQuery["type"][0])
}

func TestFetchCameras_ProvinceOnlyOmitsDistrictParam(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(cameraFixture))
	}))
	defer srv.Close()

	devices, err := newTestClient(srv.URL).FetchCameras(context.Background(), "서울", "", "")
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, "서울특별시", gotQuery["ctprvnNm"][0])
	_, hasDistrict := gotQuery["signguNm"]
	assert.False(t, hasDistrict, "an empty district must not be sent to the registry")
}

func TestFetchCameras_DeviceCodeFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cameraFixture))
	}))
	defer srv.Close()

	devices, err := newTestClient(srv.URL).FetchCameras(context.Background(), "서울", "", "F0002")
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "F0002", devices[0].ManageNo)
}

func TestFetchCameras_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCameras(context.Background(), "서울", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchCameras_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<xml>not json</xml>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCameras(context.Background(), "서울", "", "")
	assert.Error(t, err)
}

func TestFetchCameras_MissingServiceKey(t *testing.T) {
	client := NewCameraClient("", "http://unused", time.Second, time.Millisecond)
	_, err := client.FetchCameras(context.Background(), "서울", "", "")
	assert.Error(t, err)
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cb := NewHTTPCircuitBreaker()
	for i := 0; i < 5; i++ {
		require.True(t, cb.CanProceed())
		cb.RecordFailure()
	}
	assert.Equal(t, HTTPStateOpen, cb.State())
	assert.False(t, cb.CanProceed())
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cb := NewHTTPCircuitBreaker()
	cb.timeout = time.Millisecond
	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	require.Equal(t, HTTPStateOpen, cb.State())

	time.Sleep(5 * time.Millisecond)
	require.True(t, cb.CanProceed(), "after the timeout the breaker probes")
	cb.RecordSuccess()
	cb.RecordSuccess()
	assert.Equal(t, HTTPStateClosed, cb.State())
}
