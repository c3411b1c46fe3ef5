package pairing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streampair/streampair-go/pkg/cert"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/log"
	"github.com/streampair/streampair-go/pkg/otp"
	"github.com/streampair/streampair-go/pkg/response"
	"github.com/streampair/streampair-go/pkg/transport"
)

// Event messages.
const (
	MsgStarting    = "Starting OTP pairing..."
	MsgGenerating  = "Generating OTP authentication..."
	MsgConnecting  = "Connecting to host..."
	MsgSending     = "Sending OTP pairing request..."
	MsgExtracting  = "OTP authentication successful, extracting server certificate..."
	MsgCompleted   = "OTP pairing completed successfully"
	MsgCancelled   = "OTP pairing cancelled"
	MsgUnsupported = "OTP pairing is only available with compatible servers"
	MsgTimeout     = "OTP pairing request timed out"
	MsgWrongSecret = "Incorrect PIN/passphrase combination. Check the PIN and passphrase shown on the host."
	MsgOTPExpired  = "OTP is not active or has expired. Generate a new OTP on the host."
	MsgBadUniqueID = "The host rejected this client's unique ID. Check the client configuration."
	MsgNoResponse  = "No response from host. Check that the host is running and OTP is active."
)

const (
	msgParseFmt     = "OTP pairing failed: %s"
	msgProtocolFmt  = "OTP pairing failed: %s (Code: %d)"
	msgTransportFmt = "Network error during OTP pairing: %s"
	msgPersistFmt   = "OTP pairing succeeded but the host could not be saved: %v"
)

// attempt is the single in-flight pairing attempt.
type attempt struct {
	id         string
	generation uint64
	hostID     string
	address    string
	startedAt  time.Time

	pin        otp.PIN
	passphrase []byte
	salt       otp.Salt
	token      otp.Token

	cancel context.CancelFunc
	timer  *attemptTimer
}

// wipe zeroes the attempt's secret material.
func (a *attempt) wipe() {
	a.pin.Wipe()
	otp.Wipe(a.passphrase)
	a.salt.Wipe()
	a.token.Wipe()
	a.pin = nil
	a.passphrase = nil
}

// Session runs OTP pairing attempts against hosts, one at a time.
type Session struct {
	config Config

	mu         sync.Mutex
	state      State
	current    *attempt
	generation uint64
	closed     bool

	events dispatcher
}

// NewSession creates a pairing session.
func NewSession(config Config) *Session {
	config.applyDefaults()
	return &Session{config: config}
}

// OnEvent registers a handler for pairing events.
func (s *Session) OnEvent(fn EventHandler) {
	s.events.add(fn)
}

// State returns the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InProgress reports whether an attempt is active.
func (s *Session) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateInProgress
}

// CurrentAttempt returns the active attempt's ID, or "" when idle.
func (s *Session) CurrentAttempt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.id
}

// SupportsOTP reports whether hostID is known and accepts OTP pairing.
func (s *Session) SupportsOTP(hostID string) bool {
	h, err := s.config.Hosts.Get(hostID)
	if err != nil {
		return false
	}
	return h.SupportsOTP()
}

// StartPairing begins an OTP pairing attempt with hostID and returns the
// attempt ID. pin must be exactly 4 ASCII digits; passphrase may be empty.
//
// Rejections are returned as errors with no state change and no events.
// Once accepted, the outcome arrives as an EventCompleted or EventFailed.
// ctx bounds the network request; cancelling it fails the attempt.
func (s *Session) StartPairing(ctx context.Context, hostID, pin, passphrase string) (string, error) {
	s.mu.Lock()

	h, err := s.checkStart(hostID, pin)
	if err != nil {
		s.mu.Unlock()
		s.debugLog("pairing rejected", "host", hostID, "error", err)
		return "", err
	}

	clientCert, err := cert.CertificateHex(s.config.Identity)
	if err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}

	salt, err := otp.GenerateSalt(s.config.Rand)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}

	s.generation++
	a := &attempt{
		id:         uuid.NewString(),
		generation: s.generation,
		hostID:     h.ID,
		address:    h.Address,
		startedAt:  s.config.Now(),
		pin:        otp.PIN(pin),
		passphrase: []byte(passphrase),
		salt:       salt,
	}
	a.token = otp.DeriveToken(a.pin, a.salt, a.passphrase)

	params := []transport.Param{
		{Key: ParamDeviceName, Value: s.config.DeviceName},
		{Key: ParamUpdateState, Value: "1"},
		{Key: ParamPhrase, Value: PhraseGetServerCert},
		{Key: ParamSalt, Value: a.salt.Hex()},
		{Key: ParamClientCert, Value: clientCert},
		{Key: ParamOTPAuth, Value: a.token.Hex()},
	}

	reqCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	oldState := s.state
	s.current = a
	s.state = StateInProgress

	s.logState(a, oldState, StateInProgress, "")
	s.emit(a, EventStarted, "")
	s.emit(a, EventProgress, MsgStarting)
	s.emit(a, EventProgress, MsgGenerating)
	s.emit(a, EventProgress, MsgConnecting)

	s.mu.Unlock()

	if s.config.Logger != nil {
		s.config.Logger.Info("starting OTP pairing", "attempt", a.id, "host", h.ID, "address", h.Address)
	}

	go s.run(reqCtx, a, params)

	return a.id, nil
}

// checkStart validates a start request. Caller holds s.mu.
func (s *Session) checkStart(hostID, pin string) (*host.Host, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if hostID == "" {
		return nil, ErrNoHost
	}
	h, err := s.config.Hosts.Get(hostID)
	if err != nil {
		if errors.Is(err, host.ErrHostNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHost, hostID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnknownHost, err)
	}
	if h.Address == "" {
		return nil, fmt.Errorf("%w: %s has no address", ErrUnknownHost, hostID)
	}
	if !h.SupportsOTP() {
		return nil, fmt.Errorf("%w: %s", ErrOTPUnsupported, MsgUnsupported)
	}
	if err := otp.ValidatePIN(pin); err != nil {
		return nil, err
	}
	if s.state == StateInProgress {
		return nil, ErrAlreadyInProgress
	}
	return h, nil
}

// run performs the exchange for a. It arms the timeout when the request is
// dispatched.
func (s *Session) run(ctx context.Context, a *attempt, params []transport.Param) {
	s.mu.Lock()
	if !s.isCurrent(a.generation) {
		s.mu.Unlock()
		return
	}
	gen := a.generation
	a.timer = startAttemptTimer(s.config.Timeout, func() {
		s.expire(gen)
	})
	s.emit(a, EventProgress, MsgSending)
	s.config.ProtocolLogger.Log(log.Event{
		Timestamp: s.config.Now(),
		AttemptID: a.id,
		Direction: log.DirectionOut,
		Layer:     log.LayerTransport,
		Category:  log.CategoryMessage,
		HostID:    a.hostID,
		Address:   a.address,
		Request: &log.RequestEvent{
			Endpoint: Endpoint,
			Params:   log.RedactParams(toLogParams(params), ParamOTPAuth),
		},
	})
	address := a.address
	s.mu.Unlock()

	sent := time.Now()
	text, err := s.config.Transport.Send(ctx, address, Endpoint, params, s.config.Timeout)
	s.complete(gen, text, err, time.Since(sent))
}

// complete applies a transport result to the attempt with generation gen.
// Results for any other generation are discarded.
func (s *Session) complete(gen uint64, text string, sendErr error, rtt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.current
	if !s.isCurrent(gen) {
		s.debugLog("discarding stale pairing response", "generation", gen)
		return
	}
	a.timer.Stop()

	if sendErr != nil {
		s.captureError(a, sendErr)
		err, msg, code := transportFailure(sendErr)
		s.fail(a, err, msg, code)
		return
	}

	outcome := s.config.Classifier.Classify(text)
	s.captureResponse(a, text, outcome, rtt)

	if outcome.Kind != response.KindSuccess {
		err, msg := outcomeFailure(outcome)
		code, _ := response.StatusCode(text)
		s.fail(a, err, msg, code)
		return
	}

	s.emit(a, EventProgress, MsgExtracting)

	if err := s.config.Hosts.SetPaired(a.hostID, outcome.ServerCertificate); err != nil {
		s.fail(a, fmt.Errorf("%w: %w", ErrPersist, err), fmt.Sprintf(msgPersistFmt, err), 0)
		return
	}

	identity := &PairedIdentity{
		HostID:            a.hostID,
		ServerCertificate: outcome.ServerCertificate,
		Certificate:       outcome.Certificate,
		PairedAt:          s.config.Now(),
	}
	ev := s.newEvent(a, EventCompleted, MsgCompleted)
	ev.Identity = identity

	s.finish(a, StateSucceeded, "")
	s.events.emit(ev)

	if s.config.Logger != nil {
		s.config.Logger.Info("OTP pairing completed", "attempt", a.id, "host", a.hostID,
			"elapsed", s.config.Now().Sub(a.startedAt))
	}
}

// expire fails the attempt with generation gen on timeout.
func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isCurrent(gen) {
		return
	}
	a := s.current
	s.captureError(a, ErrTimeout)
	s.fail(a, ErrTimeout, MsgTimeout, 0)
}

// Cancel abandons the active attempt and returns the session to Idle.
// The in-flight request is cancelled; any late response is discarded.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.current == nil {
		return ErrNotInProgress
	}
	a := s.current
	a.timer.Stop()

	ev := s.newEvent(a, EventCancelled, MsgCancelled)
	s.finish(a, StateIdle, "cancelled")
	s.events.emit(ev)

	s.debugLog("pairing cancelled", "attempt", a.id)
	return nil
}

// Close cancels any active attempt. Later StartPairing calls fail with
// ErrClosed.
func (s *Session) Close() error {
	_ = s.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// TimeRemaining returns the time left before the active attempt times out.
func (s *Session) TimeRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.timer.Remaining()
}

// fail ends a with a failure event. Caller holds s.mu.
func (s *Session) fail(a *attempt, err error, msg string, code int) {
	a.timer.Stop()

	ev := s.newEvent(a, EventFailed, msg)
	ev.Err = err
	ev.StatusCode = code

	s.finish(a, StateFailed, err.Error())
	s.events.emit(ev)

	if s.config.Logger != nil {
		s.config.Logger.Warn("OTP pairing failed", "attempt", a.id, "host", a.hostID, "error", err)
	}
}

// finish clears a and moves to state. Caller holds s.mu.
func (s *Session) finish(a *attempt, state State, reason string) {
	a.cancel()
	a.wipe()

	oldState := s.state
	s.current = nil
	s.state = state
	s.logState(a, oldState, state, reason)
}

// isCurrent reports whether gen is the active attempt. Caller holds s.mu.
func (s *Session) isCurrent(gen uint64) bool {
	return s.current != nil && s.current.generation == gen && s.state == StateInProgress
}

func (s *Session) newEvent(a *attempt, t EventType, msg string) Event {
	return Event{
		Type:      t,
		AttemptID: a.id,
		HostID:    a.hostID,
		Message:   msg,
	}
}

// emit queues an event for a. Caller holds s.mu.
func (s *Session) emit(a *attempt, t EventType, msg string) {
	s.events.emit(s.newEvent(a, t, msg))
}

func (s *Session) logState(a *attempt, from, to State, reason string) {
	s.config.ProtocolLogger.Log(log.Event{
		Timestamp: s.config.Now(),
		AttemptID: a.id,
		Layer:     log.LayerSession,
		Category:  log.CategoryState,
		HostID:    a.hostID,
		StateChange: &log.StateChangeEvent{
			OldState: from.String(),
			NewState: to.String(),
			Reason:   reason,
		},
	})
}

func (s *Session) captureResponse(a *attempt, text string, outcome response.Outcome, rtt time.Duration) {
	ev := log.NewResponseEvent(text)
	ev.Outcome = outcome.Kind.String()
	ev.RoundTrip = &rtt
	if code, ok := response.StatusCode(text); ok {
		ev.StatusCode = &code
	}
	s.config.ProtocolLogger.Log(log.Event{
		Timestamp: s.config.Now(),
		AttemptID: a.id,
		Direction: log.DirectionIn,
		Layer:     log.LayerTransport,
		Category:  log.CategoryMessage,
		HostID:    a.hostID,
		Address:   a.address,
		Response:  ev,
	})
}

func (s *Session) captureError(a *attempt, err error) {
	data := &log.ErrorEventData{
		Layer:   log.LayerTransport,
		Message: err.Error(),
		Context: "send pair request",
	}
	var perr *transport.ProtocolError
	if errors.As(err, &perr) {
		code := perr.StatusCode
		data.Code = &code
	}
	if errors.Is(err, ErrTimeout) {
		data.Layer = log.LayerSession
		data.Context = "await pair response"
	}
	s.config.ProtocolLogger.Log(log.Event{
		Timestamp: s.config.Now(),
		AttemptID: a.id,
		Layer:     data.Layer,
		Category:  log.CategoryError,
		HostID:    a.hostID,
		Address:   a.address,
		Error:     data,
	})
}

// debugLog logs a debug message if logging is enabled.
func (s *Session) debugLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, args...)
	}
}

func toLogParams(params []transport.Param) []log.Param {
	out := make([]log.Param, len(params))
	for i, p := range params {
		out[i] = log.Param{Key: p.Key, Value: p.Value}
	}
	return out
}

// transportFailure maps a Send error to a failure sentinel, message and code.
func transportFailure(err error) (error, string, int) {
	var perr *transport.ProtocolError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %w", ErrProtocol, err), fmt.Sprintf(msgProtocolFmt, perr.Message, perr.StatusCode), perr.StatusCode
	}
	if errors.Is(err, transport.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err), MsgTimeout, 0
	}
	var terr *transport.TransportError
	if errors.As(err, &terr) {
		return fmt.Errorf("%w: %w", ErrTransport, err), fmt.Sprintf(msgTransportFmt, terr.Detail), terr.StatusCode
	}
	return fmt.Errorf("%w: %w", ErrTransport, err), fmt.Sprintf(msgTransportFmt, err), 0
}

// outcomeFailure maps a non-success outcome to a failure sentinel and message.
func outcomeFailure(o response.Outcome) (error, string) {
	switch o.Kind {
	case response.KindNoResponse:
		return ErrNoResponse, MsgNoResponse
	case response.KindWrongSecret:
		return ErrWrongSecret, MsgWrongSecret
	case response.KindOTPUnavailable:
		return ErrOTPUnavailable, MsgOTPExpired
	case response.KindMalformedRequest:
		return fmt.Errorf("%w: %s", ErrMalformedRequest, o.Detail), MsgBadUniqueID
	default:
		return fmt.Errorf("%w: %s", ErrParse, o.Detail), fmt.Sprintf(msgParseFmt, o.Detail)
	}
}
