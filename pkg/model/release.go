package model

import (
	"fmt"
	"time"

	"github.com/Shubham-550/strfem/pkg/audit"
	"github.com/Shubham-550/strfem/pkg/logging"
)

// Release relaxes a line's end conditions: six stiffness magnitudes
// per end, start then end. Like Support it is normalized and
// classified once at construction and immutable afterwards.
type Release struct {
	ID             uint64             `json:"id"`
	Name           string             `json:"name"`
	StiffnessStart [dofCount]float64  `json:"stiffness_start"`
	StiffnessEnd   [dofCount]float64  `json:"stiffness_end"`
	StatusStart    [dofCount]DOFState `json:"status_start"`
	StatusEnd      [dofCount]DOFState `json:"status_end"`
}

func newRelease(id uint64, name string, start, end [dofCount]float64) *Release {
	start = normalizeStiffness(start)
	end = normalizeStiffness(end)
	return &Release{
		ID:             id,
		Name:           name,
		StiffnessStart: start,
		StiffnessEnd:   end,
		StatusStart:    classifyAll(start),
		StatusEnd:      classifyAll(end),
	}
}

// StatusStartString renders the start-end per-DOF states as "uuu,rrr"
func (r *Release) StatusStartString() string {
	return statusString(r.StatusStart)
}

// StatusEndString renders the end-end per-DOF states as "uuu,rrr"
func (r *Release) StatusEndString() string {
	return statusString(r.StatusEnd)
}

func (r *Release) String() string {
	return fmt.Sprintf("Release #%d %-10s  S[%s]  -->  E[%s]",
		r.ID, r.Name, r.StatusStartString(), r.StatusEndString())
}

// AddRelease creates a release from twelve raw stiffness magnitudes:
// the start end condition (kux, kuy, kuz, krx, kry, krz) followed by
// the end end condition in the same order.
func (m *Model) AddRelease(name string,
	kuxStart, kuyStart, kuzStart, krxStart, kryStart, krzStart,
	kuxEnd, kuyEnd, kuzEnd, krxEnd, kryEnd, krzEnd float64) *Release {
	start := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextReleaseID++
	release := newRelease(m.nextReleaseID, name,
		[dofCount]float64{kuxStart, kuyStart, kuzStart, krxStart, kryStart, krzStart},
		[dofCount]float64{kuxEnd, kuyEnd, kuzEnd, krxEnd, kryEnd, krzEnd})
	m.releases = append(m.releases, release)

	m.logger.Info("created new release",
		logging.ReleaseID(release.ID),
		logging.String("name", name),
		logging.String("status_start", release.StatusStartString()),
		logging.String("status_end", release.StatusEndString()))
	m.auditor.Record(&audit.Event{
		Action:   audit.ActionCreate,
		Entity:   audit.EntityRelease,
		EntityID: release.ID,
		Detail: map[string]any{
			"name":         name,
			"status_start": release.StatusStartString(),
			"status_end":   release.StatusEndString(),
		},
	})
	m.metrics.SetEntityCount("release", len(m.releases))
	m.metrics.RecordOperation("add_release", "created", time.Since(start))

	return release
}

// AddReleaseRigid creates a release rigid in every DOF at both ends,
// equivalent to no relaxation at all.
func (m *Model) AddReleaseRigid(name string) *Release {
	return m.AddRelease(name,
		TranslationalRigid, TranslationalRigid, TranslationalRigid,
		RotationalRigid, RotationalRigid, RotationalRigid,
		TranslationalRigid, TranslationalRigid, TranslationalRigid,
		RotationalRigid, RotationalRigid, RotationalRigid)
}

// AddReleasePinned creates a release rigid in translation and free in
// rotation at both ends, the classic moment release.
func (m *Model) AddReleasePinned(name string) *Release {
	return m.AddRelease(name,
		TranslationalRigid, TranslationalRigid, TranslationalRigid,
		RotationalFree, RotationalFree, RotationalFree,
		TranslationalRigid, TranslationalRigid, TranslationalRigid,
		RotationalFree, RotationalFree, RotationalFree)
}

// ApplyRelease assigns a release to a line, replacing any previous
// assignment.
func (m *Model) ApplyRelease(line *Line, release *Release) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.Release = release
}

// RemoveRelease clears a line's release assignment
func (m *Model) RemoveRelease(line *Line) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.Release = nil
}
