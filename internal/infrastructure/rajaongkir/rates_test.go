package rajaongkir_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokoniaga/order-service/internal/domain"
	"github.com/tokoniaga/order-service/internal/infrastructure/rajaongkir"
)

func TestGetDomesticCost(t *testing.T) {
	t.Run("parses quotes and sends the form", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "secret-key", r.Header.Get("key"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "501", r.PostForm.Get("origin"))
			assert.Equal(t, "114", r.PostForm.Get("destination"))
			assert.Equal(t, "1700", r.PostForm.Get("weight"))
			assert.Equal(t, "jne:sicepat", r.PostForm.Get("courier"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":[
				{"name":"JNE","code":"jne","service":"REG","description":"Reguler","cost":15000,"etd":"2-3 day"},
				{"name":"SiCepat","code":"sicepat","service":"BEST","description":"Besok Sampai","cost":25000,"etd":"1 day"}
			]}`))
		}))
		defer server.Close()

		client := rajaongkir.NewRatesClient(server.URL, "secret-key")
		quotes, err := client.GetDomesticCost(context.Background(), domain.QuoteRequest{
			OriginRO:      501,
			DestinationRO: 114,
			Weight:        1700,
			Courier:       "jne:sicepat",
		})

		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, domain.ShippingQuote{
			Name: "JNE", Code: "jne", Service: "REG",
			Description: "Reguler", Cost: 15000, ETD: "2-3 day",
		}, quotes[0])
		assert.Equal(t, 25000, quotes[1].Cost)
	})

	t.Run("surfaces the provider message on failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"meta":{"message":"destination not found"}}`))
		}))
		defer server.Close()

		client := rajaongkir.NewRatesClient(server.URL, "secret-key")
		_, err := client.GetDomesticCost(context.Background(), domain.QuoteRequest{})

		var providerErr *domain.ProviderError
		require.ErrorAs(t, err, &providerErr)
		assert.Equal(t, "rajaongkir", providerErr.Provider)
		assert.Equal(t, "destination not found", providerErr.Message)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway error</html>`))
		}))
		defer server.Close()

		client := rajaongkir.NewRatesClient(server.URL, "secret-key")
		_, err := client.GetDomesticCost(context.Background(), domain.QuoteRequest{})
		assert.ErrorIs(t, err, domain.ErrInvalidProviderResp)
	})
}
