package b2brouter

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient("test-key", WithHTTPClient(hc))
}

func TestCreateInvoice(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, StagingBaseURL+"/accounts/12345/invoices",
		func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "test-key", req.Header.Get("X-B2B-API-Key"))
			require.Equal(t, "1", req.Header.Get("X-B2B-API-Version"))
			require.Equal(t, "application/json", req.Header.Get("Content-Type"))

			var body struct {
				Invoice Invoice `json:"invoice"`
			}
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			require.Equal(t, "INV-US-2025-00005", body.Invoice.Number)
			require.Len(t, body.Invoice.InvoiceLines, 1)

			return httpmock.NewJsonResponse(http.StatusCreated, map[string]interface{}{
				"invoice": map[string]interface{}{
					"id":     987,
					"number": "INV-US-2025-00005",
					"state":  "draft",
				},
			})
		})

	record, err := client.CreateInvoice(context.Background(), "12345", &Invoice{
		Number: "INV-US-2025-00005",
		InvoiceLines: []InvoiceLine{
			{Description: "Widget", Quantity: 1, Price: 10},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(987), record.ID)
	require.Equal(t, "INV-US-2025-00005", record.Number)
	require.Equal(t, "draft", record.State)
}

func TestCreateInvoice_APIError(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, StagingBaseURL+"/accounts/12345/invoices",
		httpmock.NewStringResponder(http.StatusUnprocessableEntity, `{"error": "Number has already been taken"}`))

	_, err := client.CreateInvoice(context.Background(), "12345", &Invoice{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Equal(t, "Number has already been taken", apiErr.Error())
}

func TestCreateInvoice_APIErrorWithoutBody(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, StagingBaseURL+"/accounts/12345/invoices",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := client.CreateInvoice(context.Background(), "12345", &Invoice{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "invoicing API returned status 500", apiErr.Error())
}

func TestSendInvoice(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, StagingBaseURL+"/invoices/987/send",
		httpmock.NewStringResponder(http.StatusOK, `{}`))

	require.NoError(t, client.SendInvoice(context.Background(), 987))
	require.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSendInvoice_Unauthorized(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, StagingBaseURL+"/invoices/987/send",
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"message": "Invalid API key"}`))

	err := client.SendInvoice(context.Background(), 987)
	require.EqualError(t, err, "Invalid API key")
}

func TestListAccounts(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, StagingBaseURL+"/accounts",
		func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "1", req.URL.Query().Get("limit"))
			require.Equal(t, "test-key", req.Header.Get("X-B2B-API-Key"))

			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"accounts": []map[string]interface{}{
					{"id": 42, "name": "Acme Corp"},
				},
			})
		})

	accounts, err := client.ListAccounts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, int64(42), accounts[0].ID)
	require.Equal(t, "Acme Corp", accounts[0].Name)
}

func TestBaseURLOptions(t *testing.T) {
	require.Equal(t, StagingBaseURL, NewClient("k").BaseURL())
	require.Equal(t, ProductionBaseURL, NewClient("k", WithBaseURL(ProductionBaseURL)).BaseURL())
}
