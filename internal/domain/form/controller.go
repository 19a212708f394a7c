package form

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"riskdesk/internal/domain/sizing"
	"riskdesk/internal/domain/trade"
	"riskdesk/internal/domain/validation"
	"riskdesk/pkg/errors"
	"riskdesk/pkg/logger"
)

// Controller owns the mutable state of one trading tab: the raw field
// values, the aggregated form verdict, and the button model. Every edit is
// one synchronous validation and aggregation pass behind a single mutex;
// the validation and sizing functions underneath are pure.
type Controller struct {
	mu sync.Mutex

	id     uuid.UUID
	asset  trade.AssetType
	method trade.RiskMethod

	values map[string]string
	state  validation.FormState
	button *ButtonModel

	calc *sizing.Calculator
	log  *logger.Logger

	lastResult *sizing.Result
}

// Outcome bundles the cross-field report and the sizing result of one submit
type Outcome struct {
	Report *validation.TradeReport
	Result *sizing.Result
}

// NewController creates a controller for one (asset, method) form
func NewController(asset trade.AssetType, method trade.RiskMethod, calc *sizing.Calculator, log *logger.Logger) *Controller {
	c := &Controller{
		id:     uuid.New(),
		asset:  asset,
		method: method,
		values: make(map[string]string),
		button: NewButtonModel(),
		calc:   calc,
		log:    log,
	}
	c.values[trade.FieldRiskMethod] = method.String()
	c.refresh()
	return c
}

// ID returns the form identifier
func (c *Controller) ID() uuid.UUID { return c.id }

// Asset returns the current asset type
func (c *Controller) Asset() trade.AssetType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asset
}

// Method returns the current risk method
func (c *Controller) Method() trade.RiskMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method
}

// Button returns the button model owned by this controller
func (c *Controller) Button() *ButtonModel {
	return c.button
}

// Snapshot returns the latest aggregated form state
func (c *Controller) Snapshot() validation.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastResult returns the result of the most recent calculation, nil before
// the first submit and after a reset
func (c *Controller) LastResult() *sizing.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResult
}

// SetField records one field edit and reruns the validation pass
func (c *Controller) SetField(name, value string) validation.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(value) == "" {
		delete(c.values, name)
	} else {
		c.values[name] = value
	}
	return c.refresh()
}

// SetMethod switches the risk method. Values entered for the old method's
// fields that the new method does not use are cleared here, not by the
// required-field resolver.
func (c *Controller) SetMethod(method trade.RiskMethod) validation.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearStaleFields(c.asset, c.method, c.asset, method)
	c.method = method
	c.values[trade.FieldRiskMethod] = method.String()
	return c.refresh()
}

// SetAsset switches the asset type, clearing fields the new form does not carry
func (c *Controller) SetAsset(asset trade.AssetType) validation.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearStaleFields(c.asset, c.method, asset, c.method)
	c.asset = asset
	return c.refresh()
}

// Reset clears every field value and the last result; history is kept
func (c *Controller) Reset() validation.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values = map[string]string{trade.FieldRiskMethod: c.method.String()}
	c.lastResult = nil
	return c.refresh()
}

// Hide takes the submit control off the form
func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.button.Hide()
}

// Show restores the submit control to whatever the form state warrants
func (c *Controller) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.button.Show(c.state)
}

// Submit validates the full form, builds the typed trade record, and runs
// the sizing calculation. The button passes through loading and lands on
// whatever the post-calculation aggregation computes.
func (c *Controller) Submit() (*Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.refresh()
	if !state.Submittable {
		return nil, errors.Wrap(errors.ErrRequiredFieldMissing, "form is not submittable")
	}

	record, err := trade.FromFields(c.asset, c.values)
	if err != nil {
		c.button.Update(StateDisabled, ReasonInvalidData, err.Error(),
			map[string]string{"form_id": c.id.String()})
		return nil, err
	}

	report := validation.ValidateTrade(record)
	if !report.Valid {
		c.button.Update(StateDisabled, ReasonValidationError, firstError(report),
			map[string]string{"form_id": c.id.String()})
		return &Outcome{Report: report}, errors.Wrap(errors.ErrCrossFieldInconsistency, firstError(report))
	}

	c.button.Update(StateLoading, ReasonProcessing, "Calculating position size",
		map[string]string{"form_id": c.id.String()})

	result := c.calc.Calculate(record)

	// Cross-field warnings surface ahead of sizing warnings
	if len(report.Warnings) > 0 {
		result.Warnings = append(append([]string(nil), report.Warnings...), result.Warnings...)
	}

	c.lastResult = result
	c.refresh()

	if c.log != nil {
		c.log.Infow("position calculated",
			"form_id", c.id.String(),
			"asset", c.asset.String(),
			"method", c.method.String(),
			"success", result.Success,
			"position_size", result.PositionSize,
		)
	}

	return &Outcome{Report: report, Result: result}, nil
}

// refresh reruns aggregation and button classification. Callers hold the lock.
func (c *Controller) refresh() validation.FormState {
	required := validation.RequiredFields(c.asset, c.method)
	c.state = validation.Aggregate(c.id.String(), c.values, required)
	c.button.Apply(c.state)
	return c.state
}

// clearStaleFields drops values required only under the old (asset, method)
// pair and not under the new one
func (c *Controller) clearStaleFields(oldAsset trade.AssetType, oldMethod trade.RiskMethod,
	newAsset trade.AssetType, newMethod trade.RiskMethod) {

	keep := make(map[string]bool)
	for _, name := range validation.RequiredFields(newAsset, newMethod) {
		keep[name] = true
	}
	for _, name := range validation.RequiredFields(oldAsset, oldMethod) {
		if !keep[name] {
			delete(c.values, name)
		}
	}
}

func firstError(report *validation.TradeReport) string {
	for _, name := range orderedReportFields(report) {
		return name + ": " + report.FieldErrors[name]
	}
	return "validation failed"
}

func orderedReportFields(report *validation.TradeReport) []string {
	names := make([]string, 0, len(report.FieldErrors))
	for name := range report.FieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
