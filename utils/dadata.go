package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const dadataCleanURL = "https://cleaner.dadata.ru/api/v1/clean/address"

var (
	dadataTokenEnv  = "DADATA_TOKEN"
	dadataSecretEnv = "DADATA_SECRET"
)

// AddressResult is the outcome of address normalization. On any
// failure it degrades to the raw input with everything else empty, so
// callers never have to handle an error.
type AddressResult struct {
	NormalizedAddress string
	FiasID            string
	Latitude          *float64
	Longitude         *float64
	PostalCode        string
	Country           string
	Region            string
	City              string
	Street            string
	House             string
	QC                *int
	QCGeo             *int
}

// dadataCleanRecord mirrors one element of the clean API response.
// Coordinates come back as strings.
type dadataCleanRecord struct {
	Result     string `json:"result"`
	FiasID     string `json:"fias_id"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Region     string `json:"region"`
	City       string `json:"city"`
	Street     string `json:"street"`
	House      string `json:"house"`
	GeoLat     string `json:"geo_lat"`
	GeoLon     string `json:"geo_lon"`
	QC         *int   `json:"qc"`
	QCGeo      *int   `json:"qc_geo"`
}

// DadataClient calls the DaData clean API to turn free-text addresses
// into a canonical address, a FIAS id and coordinates.
type DadataClient struct {
	token   string
	secret  string
	baseURL string
	client  *http.Client
}

// NewDadataClient builds a client from DADATA_TOKEN / DADATA_SECRET.
// Missing credentials are not an error: every Normalize call will just
// fall back to the raw address.
func NewDadataClient() *DadataClient {
	return &DadataClient{
		token:   os.Getenv(dadataTokenEnv),
		secret:  os.Getenv(dadataSecretEnv),
		baseURL: dadataCleanURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Normalize cleans rawAddress through DaData. It never fails the
// caller: credentials missing, transport errors, bad status codes and
// undecodable bodies all degrade to the raw address and a logged
// warning.
func (d *DadataClient) Normalize(ctx context.Context, rawAddress string) AddressResult {
	degraded := AddressResult{NormalizedAddress: rawAddress}

	if d.token == "" || d.secret == "" {
		return degraded
	}

	payload, err := json.Marshal([]string{rawAddress})
	if err != nil {
		LogWarning(err, "Cannot encode the DaData request")
		return degraded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, bytes.NewReader(payload))
	if err != nil {
		LogWarning(err, "Cannot build the DaData request")
		return degraded
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Token "+d.token)
	req.Header.Set("X-Secret", d.secret)

	resp, err := d.client.Do(req)
	if err != nil {
		LogWarning(err, "DaData request failed, keeping the raw address")
		return degraded
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		LogWarning(fmt.Errorf("status=%d body=%s", resp.StatusCode, body), "DaData returned an error, keeping the raw address")
		return degraded
	}

	var records []dadataCleanRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		LogWarning(err, "Cannot decode the DaData response")
		return degraded
	}
	if len(records) == 0 {
		return degraded
	}

	rec := records[0]
	result := AddressResult{
		NormalizedAddress: rec.Result,
		FiasID:            rec.FiasID,
		PostalCode:        rec.PostalCode,
		Country:           rec.Country,
		Region:            rec.Region,
		City:              rec.City,
		Street:            rec.Street,
		House:             rec.House,
		QC:                rec.QC,
		QCGeo:             rec.QCGeo,
	}
	if result.NormalizedAddress == "" {
		result.NormalizedAddress = rawAddress
	}
	result.Latitude = ParseCoordinate(rec.GeoLat)
	result.Longitude = ParseCoordinate(rec.GeoLon)
	return result
}
