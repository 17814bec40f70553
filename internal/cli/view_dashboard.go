package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dagimg/prdesk/internal/api"
	"github.com/dagimg/prdesk/internal/cli/formatter"
	"github.com/dagimg/prdesk/internal/domain"
)

// metricsLoadedMsg carries one dashboard fetch result.
type metricsLoadedMsg struct {
	metrics *domain.DashboardMetrics
	err     error
}

// dashboardView shows the aggregate metrics for a selectable period.
type dashboardView struct {
	state   *SharedState
	period  domain.MetricsPeriod
	metrics *domain.DashboardMetrics
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		period:  domain.PeriodWeekly,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "period")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

func (v *dashboardView) load() tea.Cmd {
	svc := v.state.App.Metrics
	period := v.period
	return func() tea.Msg {
		metrics, err := svc.DashboardMetrics(context.Background(), period)
		return metricsLoadedMsg{metrics: metrics, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case metricsLoadedMsg:
		v.loading = false
		v.metrics = msg.metrics
		v.err = msg.err
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			switch v.period {
			case domain.PeriodWeekly:
				v.period = domain.PeriodMonthly
			case domain.PeriodMonthly:
				v.period = domain.PeriodYearly
			default:
				v.period = domain.PeriodWeekly
			}
			v.loading = true
			return v, v.load()
		case "r":
			v.loading = true
			return v, v.load()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading dashboard...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render(
			api.Detail(v.err, "Failed to fetch dashboard metrics"))
	}
	if v.metrics == nil {
		return "\n  " + formatter.Dim("No metrics.")
	}
	return "\n" + formatter.FormatMetrics(v.metrics)
}
