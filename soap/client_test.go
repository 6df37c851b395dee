package soap_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"operation-history/postal"
	"operation-history/retry"
	"operation-history/soap"
)

const historyResponse = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
	<S:Body>
		<ns3:GetOperationHistoryResponse xmlns:ns3="http://russianpost.org/operationhistory">
			<ns3:OperationHistoryData>
				<ns3:historyRecord>
					<ns3:ItemParameters><ns3:Barcode>RA644000001RU</ns3:Barcode></ns3:ItemParameters>
				</ns3:historyRecord>
				<ns3:historyRecord>
					<ns3:OperationParameters><ns3:OperType><ns3:Id>2</ns3:Id></ns3:OperType></ns3:OperationParameters>
				</ns3:historyRecord>
			</ns3:OperationHistoryData>
		</ns3:GetOperationHistoryResponse>
	</S:Body>
</S:Envelope>`

const faultResponse = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
	<S:Body>
		<S:Fault>
			<faultcode>S:Server</faultcode>
			<faultstring>Internal error</faultstring>
			<detail><reason>maintenance</reason></detail>
		</S:Fault>
	</S:Body>
</S:Envelope>`

type captured struct {
	method string
	header http.Header
	body   string
}

func serve(t *testing.T, status int, body string, seen *captured) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			b, _ := io.ReadAll(r.Body)
			*seen = captured{method: r.Method, header: r.Header.Clone(), body: string(b)}
		}

		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClientRequest(t *testing.T) {
	var req captured

	srv := serve(t, http.StatusOK, historyResponse, &req)

	client := soap.NewClient(srv.URL,
		soap.WithNamespace(postal.ServiceNamespace),
		soap.WithHeader(postal.AuthorizationHeader{Login: "user", Password: "secret", MustUnderstand: true}),
		soap.WithLogger(zap.NewNop()),
	)

	param := retry.Param{Name: "historyRequest", Value: postal.OperationHistoryRequest{Barcode: "RA644000001RU"}}

	_, err := client.Call(context.Background(), postal.OpGetOperationHistory, param)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, `"GetOperationHistory"`, req.header.Get("SOAPAction"))
	assert.Equal(t, "text/xml; charset=utf-8", req.header.Get("Content-Type"))

	assert.Contains(t, req.body, `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:oper="http://russianpost.org/operationhistory">`)
	assert.Contains(t, req.body, `<soapenv:Header><AuthorizationHeader soapenv:mustUnderstand="1"><login>user</login><password>secret</password></AuthorizationHeader></soapenv:Header>`)
	assert.Contains(t, req.body, `<soapenv:Body><oper:GetOperationHistory><historyRequest><Barcode>RA644000001RU</Barcode><MessageType>0</MessageType></historyRequest></oper:GetOperationHistory></soapenv:Body>`)
}

func TestClientResponse(t *testing.T) {
	srv := serve(t, http.StatusOK, historyResponse, nil)

	got, err := soap.NewClient(srv.URL, soap.WithResultPart(postal.ResultPart)).
		Call(context.Background(), postal.OpGetOperationHistory, retry.Param{Name: "historyRequest"})
	require.NoError(t, err)

	tree, ok := got.(map[string]any)
	require.True(t, ok, "%T", got)

	records, ok := tree["historyRecord"].([]any)
	require.True(t, ok)
	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{"ItemParameters": map[string]any{"Barcode": "RA644000001RU"}}, records[0])
}

func TestClientResponseWrapper(t *testing.T) {
	const single = `<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body>` +
		`<R:GetOperationHistoryResponse xmlns:R="urn:r"><R:historyRecord><R:ItemParameters><R:Barcode>RA644000001RU</R:Barcode></R:ItemParameters></R:historyRecord></R:GetOperationHistoryResponse>` +
		`</S:Body></S:Envelope>`

	tests := []struct {
		name string
		body string
		part string
		want any
	}{
		{
			name: "single record under the wrapper",
			body: single,
			part: postal.ResultPart,
			want: map[string]any{"historyRecord": map[string]any{"ItemParameters": map[string]any{"Barcode": "RA644000001RU"}}},
		},
		{
			name: "single record without a result part",
			body: single,
			want: map[string]any{"historyRecord": map[string]any{"ItemParameters": map[string]any{"Barcode": "RA644000001RU"}}},
		},
		{
			name: "result part not configured",
			body: `<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body><R:GetOperationHistoryResponse xmlns:R="urn:r"><R:OperationHistoryData><R:Note>x</R:Note></R:OperationHistoryData></R:GetOperationHistoryResponse></S:Body></S:Envelope>`,
			want: map[string]any{"OperationHistoryData": map[string]any{"Note": "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, tt.body, nil)

			got, err := soap.NewClient(srv.URL, soap.WithResultPart(tt.part)).
				Call(context.Background(), postal.OpGetOperationHistory, retry.Param{Name: "p"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{
			name: "empty part",
			body: `<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body><R:GetOperationHistoryResponse xmlns:R="urn:r"><R:OperationHistoryData/></R:GetOperationHistoryResponse></S:Body></S:Envelope>`,
			want: map[string]any{},
		},
		{
			name: "empty wrapper",
			body: `<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/"><S:Body><GetOperationHistoryResponse/></S:Body></S:Envelope>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, tt.body, nil)

			got, err := soap.NewClient(srv.URL, soap.WithResultPart(postal.ResultPart)).
				Call(context.Background(), "GetOperationHistory", retry.Param{Name: "p"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientFault(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, faultResponse, nil)

	got, err := soap.NewClient(srv.URL).Call(context.Background(), "GetOperationHistory", retry.Param{Name: "p"})
	require.NoError(t, err)

	fault, ok := got.(*soap.Fault)
	require.True(t, ok, "%T", got)

	assert.Equal(t, "S:Server", fault.Code)
	assert.Equal(t, "Internal error", fault.Reason)
	assert.Equal(t, map[string]any{"reason": "maintenance"}, fault.Detail)
	assert.Equal(t, "S:Server: Internal error", fault.FaultString())

	var _ retry.Fault = fault

	var missing *soap.Fault
	assert.Empty(t, missing.FaultString())
	assert.Equal(t, "soap fault: ", missing.Error())
}

func TestClientHTTPError(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, "<html><body>down</body></html>", nil)

	_, err := soap.NewClient(srv.URL).Call(context.Background(), "GetOperationHistory", retry.Param{Name: "p"})

	var httpErr *soap.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestClientMalformed(t *testing.T) {
	srv := serve(t, http.StatusOK, "<html><body>ok</body></html>", nil)

	_, err := soap.NewClient(srv.URL).Call(context.Background(), "GetOperationHistory", retry.Param{Name: "p"})
	assert.ErrorIs(t, err, soap.ErrUnexpectedShape)
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	_, err := soap.NewClient(srv.URL, soap.WithTimeout(20*time.Millisecond)).
		Call(context.Background(), "GetOperationHistory", retry.Param{Name: "p"})
	assert.Error(t, err)
}

func TestClientTimeoutOptionOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	hc := &http.Client{}

	start := time.Now()
	_, err := soap.NewClient(srv.URL, soap.WithTimeout(20*time.Millisecond), soap.WithHTTPClient(hc)).
		Call(context.Background(), "GetOperationHistory", retry.Param{Name: "p"})
	require.Error(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Zero(t, hc.Timeout, "caller's client is not modified")
}
