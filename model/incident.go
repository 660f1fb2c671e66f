package model

import "time"

// Incident constants fixed by spec §6.
const (
	incidentDuration = 8 * time.Second
	incidentLane     = 1
	incidentXMin     = 1000.0
	incidentXMax     = 4000.0
)

// incident records the model's single active blockage (spec §3).
type incident struct {
	vehicleID int64
	lane      int
	location  float64
}

// IncidentClock is the host-provided wall-clock timer the incident
// controller schedules restoration against (spec §5, §9: "the incident's
// timed restoration is driven by a host-provided timer... implementers
// should expose the timer as an injectable dependency so tests can advance
// it synthetically"). A production host passes RealIncidentClock{}; tests
// inject a fake that controls when After's channel fires.
type IncidentClock interface {
	After(d time.Duration) <-chan time.Time
}

// RealIncidentClock is the production IncidentClock, backed by time.After.
type RealIncidentClock struct{}

func (RealIncidentClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// TriggerAccident attempts incident injection (spec §4.6, §6): the first
// vehicle, in current list order, on the middle lane with 1000 < x < 4000
// is marked crashed and a restoration is scheduled against ic after 8
// wall-clock seconds. Idempotent: a no-op, returning false, if no
// eligible vehicle exists or an incident is already active.
func (m *Model) TriggerAccident(ic IncidentClock) bool {
	if m.incident != nil {
		return false
	}

	var target *Vehicle
	for _, v := range m.vehicles {
		if v.Lane == incidentLane && v.X > incidentXMin && v.X < incidentXMax {
			target = v
			break
		}
	}
	if target == nil {
		return false
	}

	target.Crashed = true
	target.V = 0
	target.A = 0
	m.incident = &incident{vehicleID: target.ID, lane: target.Lane, location: target.X}

	id := target.ID
	go func() {
		<-ic.After(incidentDuration)
		// The send blocks while restoreCh is full, so the signal is never
		// dropped; the next Step (or Reset) drains it.
		m.restoreCh <- id
	}()
	return true
}

// ClearIncident immediately ends the active incident, if any, restoring
// its vehicle without waiting for the IncidentClock to fire (spec §4.6:
// "clearing an incident before its deadline cancels the timer"). The
// timer's eventual signal becomes a no-op because it carries the old
// incident's vehicle id, which restoreIncident checks against the current
// (now different, or absent) incident record.
func (m *Model) ClearIncident() {
	if m.incident == nil {
		return
	}
	m.restoreIncident(m.incident.vehicleID)
}

// drainIncidentRestorations processes every restoration signal that has
// fired since the last Step, so the actual vehicle mutation happens inside
// Step's atomic boundary (spec §5) even though the timer itself runs on a
// separate goroutine.
func (m *Model) drainIncidentRestorations() {
	for {
		select {
		case id := <-m.restoreCh:
			m.restoreIncident(id)
		default:
			return
		}
	}
}

// restoreIncident clears the crashed flag for id and the incident record,
// idempotently: if id no longer matches the active incident (already
// cleared, or the vehicle despawned and a newer incident started), it is a
// no-op (spec §5).
func (m *Model) restoreIncident(id int64) {
	if m.incident == nil || m.incident.vehicleID != id {
		return
	}
	for _, v := range m.vehicles {
		if v.ID == id {
			v.Crashed = false
			break
		}
	}
	m.incident = nil
}
