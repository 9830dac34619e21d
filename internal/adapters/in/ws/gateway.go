package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/ports"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/labstack/echo/v4"
)

// RoleCourier is the handshake role under which a connection is registered
// for job offers. Connections with any other role are served but never
// receive broadcasts.
const RoleCourier = "courier"

// defaultOpTimeout bounds the handling of a single inbound event.
const defaultOpTimeout = 10 * time.Second

// clientSession is the slice of Session the event handlers need; tests
// substitute a fake.
type clientSession interface {
	Peer
	CourierID() string
}

// Gateway upgrades courier connections, registers them and routes inbound
// events to the application layer. One goroutine per connection runs the
// read loop; malformed frames are logged and skipped, never fatal to the
// session.
type Gateway struct {
	registry    *Registry
	openJobs    queries.GetOpenJobsQueryHandler
	claimJob    commands.ClaimJobCommandHandler
	completeJob commands.CompleteJobCommandHandler
	rejectJob   commands.RejectJobCommandHandler
	channel     ports.ChannelGateway
	logger      *slog.Logger
	opTimeout   time.Duration
}

// NewGateway creates the session gateway.
func NewGateway(
	registry *Registry,
	openJobs queries.GetOpenJobsQueryHandler,
	claimJob commands.ClaimJobCommandHandler,
	completeJob commands.CompleteJobCommandHandler,
	rejectJob commands.RejectJobCommandHandler,
	channel ports.ChannelGateway,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		registry:    registry,
		openJobs:    openJobs,
		claimJob:    claimJob,
		completeJob: completeJob,
		rejectJob:   rejectJob,
		channel:     channel,
		logger:      logger.With("component", "session_gateway"),
		opTimeout:   defaultOpTimeout,
	}
}

// Handle is the echo handler mounted at the websocket endpoint. The
// handshake carries role and courierId as query parameters.
func (g *Gateway) Handle(c echo.Context) error {
	role := c.QueryParam("role")
	courierID := c.QueryParam("courierId")

	conn, _, _, err := ws.UpgradeHTTP(c.Request(), c.Response())
	if err != nil {
		g.logger.Warn("Websocket upgrade failed", "error", err)
		return err
	}

	go g.serve(conn, role, courierID)
	return nil
}

// serve owns the connection for its lifetime.
func (g *Gateway) serve(conn net.Conn, role string, courierID string) {
	defer conn.Close()

	sess := newSession(conn, courierID)

	if role == RoleCourier && courierID != "" {
		replaced, err := g.registry.Register(courierID, sess)
		if err != nil {
			g.logger.Error("Courier registration failed",
				"courier_id", courierID, "error", err)
			return
		}
		if replaced != nil {
			if old, ok := replaced.(*Session); ok {
				_ = old.Close()
			}
		}
		defer g.registry.MarkOffline(courierID, sess)

		// New sessions learn the channel state without asking.
		g.emit(sess, ports.EventWhatsAppStatus, ports.NewStatusPayload(g.channel.State()))
	}

	for {
		data, op, err := wsutil.ReadClientData(conn)
		if err != nil {
			g.logger.Debug("Session closed",
				"session_id", sess.ID(), "courier_id", courierID, "error", err)
			return
		}
		if op != ws.OpText {
			continue
		}

		g.dispatch(sess, data)
	}
}

// dispatch decodes one frame and routes it by event name. Bad frames and
// failed operations keep the session open.
func (g *Gateway) dispatch(sess clientSession, frame []byte) {
	var env inboundEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		g.logger.Warn("Discarding malformed frame", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.opTimeout)
	defer cancel()

	switch env.Event {
	case ports.EventRequestInitialData:
		g.handleInitialData(ctx, sess, env.Data)
	case ports.EventJobAccepted:
		g.handleJobAccepted(ctx, sess, env.Data)
	case ports.EventJobRejected:
		g.handleJobRejected(ctx, sess, env.Data)
	case ports.EventJobCompleted:
		g.handleJobCompleted(ctx, sess, env.Data)
	case ports.EventGetWhatsAppStatus:
		g.emit(sess, ports.EventWhatsAppStatus, ports.NewStatusPayload(g.channel.State()))
	case ports.EventSendMessage:
		g.handleSendMessage(ctx, sess, env.Data)
	default:
		g.logger.Debug("Ignoring unknown event", "event", env.Event)
	}
}

func (g *Gateway) handleInitialData(ctx context.Context, sess clientSession, data json.RawMessage) {
	var payload initialDataPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Warn("Discarding malformed request_initial_data payload", "error", err)
		return
	}

	query, err := queries.NewGetOpenJobsQuery(queries.DefaultOpenJobsLimit)
	if err != nil {
		g.logger.Error("Failed to build open-jobs query", "error", err)
		return
	}

	jobs, err := g.openJobs.Handle(ctx, query)
	if err != nil {
		g.logger.Error("Failed to load initial jobs",
			"courier_id", payload.CourierID, "error", err)
		return
	}

	g.emit(sess, ports.EventInitialJobs, ports.NewJobPayloads(jobs))
}

func (g *Gateway) handleJobAccepted(ctx context.Context, sess clientSession, data json.RawMessage) {
	payload, ok := g.jobAction(sess, data, ports.EventJobAccepted)
	if !ok {
		return
	}

	cmd, err := commands.NewClaimJobCommand(payload.JobID, payload.CourierID)
	if err != nil {
		g.logger.Warn("Invalid job_accepted payload", "error", err)
		return
	}

	claimed, err := g.claimJob.Handle(ctx, cmd)
	switch {
	case errors.Is(err, job.ErrNotClaimable):
		// Expected loser of the claim race; the client gets no reply.
		g.logger.Info("Claim lost",
			"job_id", payload.JobID, "courier_id", payload.CourierID)
	case err != nil:
		g.logger.Error("Claim failed",
			"job_id", payload.JobID, "courier_id", payload.CourierID, "error", err)
	default:
		g.logger.Info("Job claimed",
			"job_id", claimed.ID(), "courier_id", payload.CourierID)
	}
}

func (g *Gateway) handleJobRejected(ctx context.Context, sess clientSession, data json.RawMessage) {
	payload, ok := g.jobAction(sess, data, ports.EventJobRejected)
	if !ok {
		return
	}

	cmd, err := commands.NewRejectJobCommand(payload.JobID, payload.CourierID)
	if err != nil {
		g.logger.Warn("Invalid job_rejected payload", "error", err)
		return
	}

	if err := g.rejectJob.Handle(ctx, cmd); err != nil {
		g.logger.Error("Reject failed",
			"job_id", payload.JobID, "courier_id", payload.CourierID, "error", err)
	}
}

func (g *Gateway) handleJobCompleted(ctx context.Context, sess clientSession, data json.RawMessage) {
	payload, ok := g.jobAction(sess, data, ports.EventJobCompleted)
	if !ok {
		return
	}

	cmd, err := commands.NewCompleteJobCommand(payload.JobID, payload.CourierID)
	if err != nil {
		g.logger.Warn("Invalid job_completed payload", "error", err)
		return
	}

	completed, err := g.completeJob.Handle(ctx, cmd)
	switch {
	case errors.Is(err, job.ErrInvalidTransition):
		g.logger.Warn("Completion refused",
			"job_id", payload.JobID, "courier_id", payload.CourierID, "error", err)
	case err != nil:
		g.logger.Error("Completion failed",
			"job_id", payload.JobID, "courier_id", payload.CourierID, "error", err)
	default:
		g.logger.Info("Job completed",
			"job_id", completed.ID(), "courier_id", payload.CourierID)
	}
}

func (g *Gateway) handleSendMessage(ctx context.Context, sess clientSession, data json.RawMessage) {
	var payload sendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Warn("Discarding malformed send_message payload", "error", err)
		return
	}
	if payload.Sender == "" {
		payload.Sender = sess.CourierID()
	}

	if err := g.channel.SendMessage(ctx, payload.Sender, payload.JobID, payload.Message); err != nil {
		g.logger.Error("Message relay failed",
			"job_id", payload.JobID, "sender", payload.Sender, "error", err)
	}
}

// jobAction decodes the shared job action payload, defaulting the courier id
// to the session's handshake identity.
func (g *Gateway) jobAction(sess clientSession, data json.RawMessage, event string) (jobActionPayload, bool) {
	var payload jobActionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Warn("Discarding malformed payload", "event", event, "error", err)
		return jobActionPayload{}, false
	}
	if payload.CourierID == "" {
		payload.CourierID = sess.CourierID()
	}
	return payload, true
}

func (g *Gateway) emit(sess clientSession, event string, payload any) {
	if err := sess.Emit(event, payload); err != nil {
		g.logger.Debug("Session write failed", "event", event, "error", err)
	}
}
