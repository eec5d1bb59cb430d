package service

import (
	"context"
	"fmt"
	"strings"

	"hsetrack_backend/internals/features/programs/model"
)

type NewProgramInput struct {
	Name      string
	PlanType  string
	Reference string
	DueDate   string
}

// CreateProgram menambah program (id = max+1, 12 bulan nol) di partisi.
func (e *Engine) CreateProgram(ctx context.Context, part model.Partition, in NewProgramInput) (model.Program, error) {
	e.mu.Lock()
	coll, err := e.loader.Load(ctx, part)
	if err != nil {
		e.mu.Unlock()
		return model.Program{}, err
	}

	prog := model.NewProgram(coll.NextID(), strings.TrimSpace(in.Name), strings.TrimSpace(in.PlanType))
	prog.Reference = strings.TrimSpace(in.Reference)
	prog.DueDate = strings.TrimSpace(in.DueDate)
	coll.Programs = append(coll.Programs, prog)

	if err := e.loader.Save(ctx, part, coll); err != nil {
		e.mu.Unlock()
		return model.Program{}, fmt.Errorf("commit %s: %w", part, err)
	}
	e.mu.Unlock()
	e.publish(part)

	if e.remote != nil {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
		defer cancel()
		if err := e.remote.UpsertMaster(rctx, MasterRow(part, prog)); err != nil {
			e.log.WithError(err).Warnf("[SYNC] master_programs upsert gagal untuk %q", prog.Name)
		}
	}
	return prog, nil
}

// DeleteProgram menghapus program by id di partisi.
func (e *Engine) DeleteProgram(ctx context.Context, part model.Partition, id int) error {
	e.mu.Lock()
	coll, err := e.loader.Load(ctx, part)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	idx := coll.IndexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrProgramNotFound, part.UnifiedID(id))
	}
	coll.Programs = append(coll.Programs[:idx], coll.Programs[idx+1:]...)
	if err := e.loader.Save(ctx, part, coll); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("commit %s: %w", part, err)
	}
	e.mu.Unlock()
	e.publish(part)
	return nil
}

type ProgramView struct {
	model.Program
	UnifiedID string  `json:"unified_id"`
	Summary   Summary `json:"summary"`
}

type PartitionView struct {
	Partition  model.Partition `json:"partition"`
	StorageKey string          `json:"storage_key"`
	Year       int             `json:"year"`
	Category   string          `json:"category,omitempty"`
	Region     string          `json:"region,omitempty"`
	Programs   []ProgramView   `json:"programs"`
}

// ListPartition: koleksi mentah + ringkasan progress per program.
func (e *Engine) ListPartition(ctx context.Context, part model.Partition) (PartitionView, error) {
	coll, err := e.loader.Load(ctx, part)
	if err != nil {
		return PartitionView{}, err
	}
	view := PartitionView{
		Partition:  part,
		StorageKey: part.StorageKey(),
		Year:       coll.Year,
		Category:   coll.Category,
		Region:     coll.Region,
		Programs:   make([]ProgramView, 0, len(coll.Programs)),
	}
	for _, p := range coll.Programs {
		view.Programs = append(view.Programs, ProgramView{Program: p, UnifiedID: part.UnifiedID(p.ID), Summary: Aggregate(p)})
	}
	return view, nil
}

// MasterRow memetakan program ke baris master_programs di remote.
func MasterRow(part model.Partition, p model.Program) model.MasterProgramModel {
	row := model.MasterProgramModel{
		Title:       p.Name,
		ProgramType: part.ProgramType(),
		Region:      part.Region(),
		Base:        part.Base,
		PlanType:    p.PlanType,
	}
	if p.Reference != "" {
		ref := p.Reference
		row.ReferenceDoc = &ref
	}
	if p.DueDate != "" {
		due := p.DueDate
		row.DueDate = &due
	}
	return row
}
