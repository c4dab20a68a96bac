package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the ledger service.
const LedgerServiceName = "tripledger.v1.LedgerService"

// Procedure paths, in the form "/<service>/<method>".
const (
	CreateTripProcedure        = "/" + LedgerServiceName + "/CreateTrip"
	GetTripProcedure           = "/" + LedgerServiceName + "/GetTrip"
	ListTripsProcedure         = "/" + LedgerServiceName + "/ListTrips"
	UpdateTripProcedure        = "/" + LedgerServiceName + "/UpdateTrip"
	AddParticipantProcedure    = "/" + LedgerServiceName + "/AddParticipant"
	ListParticipantsProcedure  = "/" + LedgerServiceName + "/ListParticipants"
	AddExpenseProcedure        = "/" + LedgerServiceName + "/AddExpense"
	DeleteExpenseProcedure     = "/" + LedgerServiceName + "/DeleteExpense"
	ListExpensesProcedure      = "/" + LedgerServiceName + "/ListExpenses"
	SetForecastProcedure       = "/" + LedgerServiceName + "/SetForecast"
	GetSettlementProcedure     = "/" + LedgerServiceName + "/GetSettlement"
	GetBudgetSnapshotProcedure = "/" + LedgerServiceName + "/GetBudgetSnapshot"
)

// NewLedgerServiceHandler builds an HTTP handler serving every LedgerService
// procedure. It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSONCodec()}, opts...)
	handlers := map[string]http.Handler{
		CreateTripProcedure:        connect.NewUnaryHandler(CreateTripProcedure, svc.CreateTrip, opts...),
		GetTripProcedure:           connect.NewUnaryHandler(GetTripProcedure, svc.GetTrip, opts...),
		ListTripsProcedure:         connect.NewUnaryHandler(ListTripsProcedure, svc.ListTrips, opts...),
		UpdateTripProcedure:        connect.NewUnaryHandler(UpdateTripProcedure, svc.UpdateTrip, opts...),
		AddParticipantProcedure:    connect.NewUnaryHandler(AddParticipantProcedure, svc.AddParticipant, opts...),
		ListParticipantsProcedure:  connect.NewUnaryHandler(ListParticipantsProcedure, svc.ListParticipants, opts...),
		AddExpenseProcedure:        connect.NewUnaryHandler(AddExpenseProcedure, svc.AddExpense, opts...),
		DeleteExpenseProcedure:     connect.NewUnaryHandler(DeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ListExpensesProcedure:      connect.NewUnaryHandler(ListExpensesProcedure, svc.ListExpenses, opts...),
		SetForecastProcedure:       connect.NewUnaryHandler(SetForecastProcedure, svc.SetForecast, opts...),
		GetSettlementProcedure:     connect.NewUnaryHandler(GetSettlementProcedure, svc.GetSettlement, opts...),
		GetBudgetSnapshotProcedure: connect.NewUnaryHandler(GetBudgetSnapshotProcedure, svc.GetBudgetSnapshot, opts...),
	}

	prefix := "/" + LedgerServiceName + "/"
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// LedgerServiceClient is a typed client for LedgerService.
type LedgerServiceClient struct {
	createTrip        *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip           *connect.Client[GetTripRequest, GetTripResponse]
	listTrips         *connect.Client[ListTripsRequest, ListTripsResponse]
	updateTrip        *connect.Client[UpdateTripRequest, UpdateTripResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	listParticipants  *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	addExpense        *connect.Client[AddExpenseRequest, AddExpenseResponse]
	deleteExpense     *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listExpenses      *connect.Client[ListExpensesRequest, ListExpensesResponse]
	setForecast       *connect.Client[SetForecastRequest, SetForecastResponse]
	getSettlement     *connect.Client[GetSettlementRequest, GetSettlementResponse]
	getBudgetSnapshot *connect.Client[GetBudgetSnapshotRequest, GetBudgetSnapshotResponse]
}

// NewLedgerServiceClient creates a client for the service at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSONCodec()}, opts...)
	return &LedgerServiceClient{
		createTrip:        connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+CreateTripProcedure, opts...),
		getTrip:           connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+GetTripProcedure, opts...),
		listTrips:         connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+ListTripsProcedure, opts...),
		updateTrip:        connect.NewClient[UpdateTripRequest, UpdateTripResponse](httpClient, baseURL+UpdateTripProcedure, opts...),
		addParticipant:    connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+AddParticipantProcedure, opts...),
		listParticipants:  connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+ListParticipantsProcedure, opts...),
		addExpense:        connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+AddExpenseProcedure, opts...),
		deleteExpense:     connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+DeleteExpenseProcedure, opts...),
		listExpenses:      connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ListExpensesProcedure, opts...),
		setForecast:       connect.NewClient[SetForecastRequest, SetForecastResponse](httpClient, baseURL+SetForecastProcedure, opts...),
		getSettlement:     connect.NewClient[GetSettlementRequest, GetSettlementResponse](httpClient, baseURL+GetSettlementProcedure, opts...),
		getBudgetSnapshot: connect.NewClient[GetBudgetSnapshotRequest, GetBudgetSnapshotResponse](httpClient, baseURL+GetBudgetSnapshotProcedure, opts...),
	}
}

func (c *LedgerServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetForecast(ctx context.Context, req *connect.Request[SetForecastRequest]) (*connect.Response[SetForecastResponse], error) {
	return c.setForecast.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetBudgetSnapshot(ctx context.Context, req *connect.Request[GetBudgetSnapshotRequest]) (*connect.Response[GetBudgetSnapshotResponse], error) {
	return c.getBudgetSnapshot.CallUnary(ctx, req)
}
