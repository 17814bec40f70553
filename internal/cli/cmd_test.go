package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/config"
	"github.com/dagimg/prdesk/internal/domain"
	"github.com/dagimg/prdesk/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App against fake services and a real session store backed
// by an in-memory database.
func testApp(t *testing.T) (*App, *fakeRequestService, *fakeNotificationService) {
	t.Helper()
	requests := &fakeRequestService{}
	notify := &fakeNotificationService{}

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &App{
		Auth:     &fakeAuthService{},
		Requests: requests,
		Notify:   notify,
		Metrics:  &fakeMetricsService{},
		Sessions: testutil.NewTestStore(t),
		Config:   config.Config{},
		Log:      log,
	}, requests, notify
}

// executeCmd runs a cobra command and captures stdout alongside cobra's own
// output. Most commands print via fmt.Print, which bypasses cmd.OutOrStdout.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	runErr := root.Execute()

	w.Close()
	os.Stdout = old
	captured, _ := io.ReadAll(r)
	r.Close()

	return buf.String() + string(captured), runErr
}

// --- root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	a, _, _ := testApp(t)

	output, err := executeCmd(t, a)
	require.NoError(t, err)
	assert.Contains(t, output, "prdesk")
}

// --- auth commands ---

func TestLoginCmd_RequiresUsername(t *testing.T) {
	a, _, _ := testApp(t)

	_, err := executeCmd(t, a, "login")
	assert.Error(t, err)
}

func TestLoginCmd_Success(t *testing.T) {
	a, _, _ := testApp(t)
	a.Auth = &fakeAuthService{
		loginFn: func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
			return &api.LoginResponse{Token: "tok", User: domain.User{Username: username, FirstName: "Sara", LastName: "Bekele"}}, nil
		},
	}

	output, err := executeCmd(t, a, "login", "--username", "sara", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, output, "Logged in as")
	assert.Contains(t, output, "Sara Bekele")
}

func TestLoginCmd_Failure(t *testing.T) {
	a, _, _ := testApp(t)
	a.Auth = &fakeAuthService{
		loginFn: func(ctx context.Context, username, password string) (*api.LoginResponse, error) {
			return nil, &api.ServerError{StatusCode: 400, Detail: "Invalid credentials"}
		},
	}

	_, err := executeCmd(t, a, "login", "--username", "sara", "--password", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestWhoamiCmd_NotSignedIn(t *testing.T) {
	a, _, _ := testApp(t)

	output, err := executeCmd(t, a, "whoami")
	require.NoError(t, err)
	assert.Contains(t, output, "Not signed in.")
}

func TestWhoamiCmd_SignedIn(t *testing.T) {
	a, _, _ := testApp(t)
	user := testutil.NewTestUser("helen", testutil.WithHOD(), testutil.WithName("Helen", "Tadesse"))
	require.NoError(t, a.Sessions.Set(context.Background(), "tok", *user))

	output, err := executeCmd(t, a, "whoami")
	require.NoError(t, err)
	assert.Contains(t, output, "Helen Tadesse")
	assert.Contains(t, output, "head of department")
}

func TestLogoutCmd_ClearsSession(t *testing.T) {
	a, _, _ := testApp(t)
	require.NoError(t, a.Sessions.Set(context.Background(), "tok", *testutil.NewTestUser("sara")))

	_, err := executeCmd(t, a, "logout")
	require.NoError(t, err)
	assert.False(t, a.Sessions.Authenticated())
}

func TestProfileUpdateCmd_RequiresAField(t *testing.T) {
	a, _, _ := testApp(t)

	_, err := executeCmd(t, a, "profile", "update")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

// --- list / show / delete ---

func TestListCmd_PrintsTitles(t *testing.T) {
	a, requests, _ := testApp(t)
	requests.listFn = func(ctx context.Context) ([]domain.PurchaseRequest, error) {
		return []domain.PurchaseRequest{
			*testutil.NewTestRequest("Office laptops"),
			*testutil.NewTestRequest("Printer toner"),
		}, nil
	}

	output, err := executeCmd(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Office laptops")
	assert.Contains(t, output, "Printer toner")
}

func TestListCmd_SearchFilters(t *testing.T) {
	a, requests, _ := testApp(t)
	requests.listFn = func(ctx context.Context) ([]domain.PurchaseRequest, error) {
		return []domain.PurchaseRequest{
			*testutil.NewTestRequest("Office laptops"),
			*testutil.NewTestRequest("Printer toner"),
		}, nil
	}

	output, err := executeCmd(t, a, "list", "--search", "laptop")
	require.NoError(t, err)
	assert.Contains(t, output, "Office laptops")
	assert.NotContains(t, output, "Printer toner")
}

func TestListCmd_Empty(t *testing.T) {
	a, _, _ := testApp(t)

	output, err := executeCmd(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No purchase requests found.")
}

func TestShowCmd_InvalidID(t *testing.T) {
	a, _, _ := testApp(t)

	_, err := executeCmd(t, a, "show", "abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request ID")
}

func TestShowCmd_NotFound(t *testing.T) {
	a, _, _ := testApp(t)

	_, err := executeCmd(t, a, "show", "7")
	assert.Error(t, err)
}

func TestDeleteCmd_CallsService(t *testing.T) {
	a, requests, _ := testApp(t)

	output, err := executeCmd(t, a, "delete", "4")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, requests.deletions)
	assert.Contains(t, output, "Deleted purchase request #4")
}

// --- approve / reject ---

func TestApproveCmd_UpdatesStatus(t *testing.T) {
	a, requests, _ := testApp(t)
	requests.getFn = func(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
		return testutil.NewTestRequest("Office laptops"), nil
	}

	output, err := executeCmd(t, a, "approve", "3")
	require.NoError(t, err)
	require.Len(t, requests.statuses, 1)
	assert.Equal(t, domain.StatusApproved, requests.statuses[0].Status)
	assert.Contains(t, output, "Approved")
}

func TestApproveCmd_TerminalStatus(t *testing.T) {
	a, requests, _ := testApp(t)
	requests.getFn = func(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
		return testutil.NewTestRequest("Office laptops", testutil.WithStatus(domain.StatusRejected)), nil
	}

	_, err := executeCmd(t, a, "approve", "3")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "can no longer be acted on")
	assert.Empty(t, requests.statuses)
}

func TestRejectCmd_RequiresReason(t *testing.T) {
	a, requests, _ := testApp(t)
	requests.getFn = func(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
		return testutil.NewTestRequest("Office laptops"), nil
	}

	_, err := executeCmd(t, a, "reject", "3")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Please provide a reason for rejection")
	assert.Empty(t, requests.statuses, "no status update should be sent without a reason")
}

func TestRejectCmd_SendsReason(t *testing.T) {
	a, requests, _ := testApp(t)
	requests.getFn = func(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
		return testutil.NewTestRequest("Office laptops"), nil
	}

	output, err := executeCmd(t, a, "reject", "3", "--reason", "  over budget  ")
	require.NoError(t, err)
	require.Len(t, requests.statuses, 1)
	assert.Equal(t, domain.StatusRejected, requests.statuses[0].Status)
	assert.Equal(t, "over budget", requests.statuses[0].RejectionReason)
	assert.Contains(t, output, "Rejected")
}

func TestRejectCmd_Forbidden(t *testing.T) {
	a, requests, _ := testApp(t)
	requests.getFn = func(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
		return testutil.NewTestRequest("Office laptops"), nil
	}
	requests.statusFn = func(ctx context.Context, id int, update api.StatusUpdate) (*domain.PurchaseRequest, error) {
		return nil, api.ErrForbidden
	}

	_, err := executeCmd(t, a, "reject", "3", "--reason", "no")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "You do not have permission to perform this action.")
}

// --- create / edit ---

func TestCreateCmd_RequiresFlags(t *testing.T) {
	a, _, _ := testApp(t)

	_, err := executeCmd(t, a, "create")
	assert.Error(t, err)
}

func TestCreateCmd_CoercesApproverAndQuantity(t *testing.T) {
	a, requests, _ := testApp(t)
	var got api.RequestPayload
	requests.createFn = func(ctx context.Context, payload api.RequestPayload) (*domain.PurchaseRequest, error) {
		got = payload
		return testutil.NewTestRequest("Office laptops"), nil
	}

	_, err := executeCmd(t, a, "create",
		"--title", "Office laptops",
		"--department", "IT & Business Support",
		"--approver", "7",
		"--type", "Hardware",
		"--item", "ThinkPad T14|3|LPT-01|pcs|Dev machines",
	)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Approver)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "ThinkPad T14", got.Items[0].ItemTitle)
	assert.Equal(t, 3, got.Items[0].ItemQuantity)
	assert.Equal(t, "LPT-01", got.Items[0].ItemCode)
}

func TestCreateCmd_InvalidApprover(t *testing.T) {
	a, requests, _ := testApp(t)
	var called bool
	requests.createFn = func(ctx context.Context, payload api.RequestPayload) (*domain.PurchaseRequest, error) {
		called = true
		return nil, nil
	}

	_, err := executeCmd(t, a, "create",
		"--title", "Office laptops",
		"--department", "IT & Business Support",
		"--approver", "helen",
		"--type", "Hardware",
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "select an approver")
	assert.False(t, called)
}

func TestCreateCmd_BadItemSpec(t *testing.T) {
	a, _, _ := testApp(t)

	_, err := executeCmd(t, a, "create",
		"--title", "Office laptops",
		"--department", "IT & Business Support",
		"--approver", "7",
		"--type", "Hardware",
		"--item", "no-quantity",
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --item")
}

func TestEditCmd_ReplacesItems(t *testing.T) {
	a, requests, _ := testApp(t)
	existing := testutil.NewTestRequest("Office laptops",
		testutil.WithItems(domain.LineItem{ItemTitle: "Old", ItemQuantity: 1}))
	requests.getFn = func(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
		return existing, nil
	}
	var got api.RequestPayload
	requests.updateFn = func(ctx context.Context, id int, payload api.RequestPayload) (*domain.PurchaseRequest, error) {
		got = payload
		return existing, nil
	}

	_, err := executeCmd(t, a, "edit", "5",
		"--title", "Office laptops v2",
		"--item", "Monitor|2",
	)
	require.NoError(t, err)
	assert.Equal(t, "Office laptops v2", got.Title)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Monitor", got.Items[0].ItemTitle)
	assert.Equal(t, 2, got.Items[0].ItemQuantity)
}

func TestEditCmd_FrozenForNonHOD(t *testing.T) {
	a, requests, _ := testApp(t)
	require.NoError(t, a.Sessions.Set(context.Background(), "tok", *testutil.NewTestUser("sara")))
	requests.getFn = func(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
		return testutil.NewTestRequest("Office laptops", testutil.WithStatus(domain.StatusApproved)), nil
	}

	_, err := executeCmd(t, a, "edit", "5", "--title", "Changed")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "can no longer be modified")
}

// --- dashboard / notifications ---

func TestDashboardCmd_InvalidPeriod(t *testing.T) {
	a, _, _ := testApp(t)

	_, err := executeCmd(t, a, "dashboard", "--period", "Daily")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid period")
}

func TestDashboardCmd_PassesPeriod(t *testing.T) {
	a, _, _ := testApp(t)
	var got domain.MetricsPeriod
	a.Metrics = &fakeMetricsService{
		metricsFn: func(ctx context.Context, period domain.MetricsPeriod) (*domain.DashboardMetrics, error) {
			got = period
			return &domain.DashboardMetrics{Period: period, TotalRequests: 4}, nil
		},
	}

	output, err := executeCmd(t, a, "dashboard", "--period", "Monthly")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodMonthly, got)
	assert.Contains(t, output, "MONTHLY")
}

func TestNotificationsCmd_Empty(t *testing.T) {
	a, _, _ := testApp(t)

	output, err := executeCmd(t, a, "notifications")
	require.NoError(t, err)
	assert.Contains(t, output, "No notifications.")
}

func TestNotificationsCmd_MarkRead(t *testing.T) {
	a, _, notify := testApp(t)

	output, err := executeCmd(t, a, "notifications", "--mark-read", "9")
	require.NoError(t, err)
	assert.Equal(t, []int{9}, notify.markedRead)
	assert.Contains(t, output, "Marked notification #9 read")
}
