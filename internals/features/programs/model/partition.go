package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Source string

const (
	SourceOTP    Source = "otp"
	SourceMatrix Source = "matrix"
)

const (
	RegionIndonesia = "indonesia"
	RegionAsia      = "asia"

	BaseAll        = "all"
	BaseNarogong   = "narogong"
	BaseBalikpapan = "balikpapan"
	BaseDuri       = "duri"

	CategoryAudit    = "audit"
	CategoryTraining = "training"
	CategoryDrill    = "drill"
	CategoryMeeting  = "meeting"
)

var (
	ErrInvalidPartition = errors.New("invalid partition")
	ErrMalformedID      = errors.New("malformed program id")
)

// Urutan merge OTP indonesia/all: narogong, duri, balikpapan (first wins saat dedup).
// Sengaja beda dengan NamedBases; urutan ini menentukan program mana yang bertahan.
var MergeBases = []string{BaseNarogong, BaseDuri, BaseBalikpapan}

// Urutan enumerasi registry: narogong, balikpapan, duri (urutan list gabungan).
var NamedBases = []string{BaseNarogong, BaseBalikpapan, BaseDuri}

var MatrixCategories = []string{CategoryAudit, CategoryTraining, CategoryDrill, CategoryMeeting}

// Partition adalah (source, region|category, base) yang memilih satu koleksi fisik.
type Partition struct {
	Source    Source `json:"source"`
	Dimension string `json:"dimension"`
	Base      string `json:"base"`
}

var OTPPartitions = []Partition{
	{SourceOTP, RegionIndonesia, BaseNarogong},
	{SourceOTP, RegionIndonesia, BaseBalikpapan},
	{SourceOTP, RegionIndonesia, BaseDuri},
	{SourceOTP, RegionAsia, BaseAll},
}

var MatrixPartitions = func() []Partition {
	out := make([]Partition, 0, len(MatrixCategories)*len(NamedBases))
	for _, cat := range MatrixCategories {
		for _, b := range NamedBases {
			out = append(out, Partition{SourceMatrix, cat, b})
		}
	}
	return out
}()

// AllPartitions: tabel statis 4 OTP + 12 Matrix. Tidak ada discovery dinamis.
func AllPartitions() []Partition {
	out := make([]Partition, 0, len(OTPPartitions)+len(MatrixPartitions))
	out = append(out, OTPPartitions...)
	return append(out, MatrixPartitions...)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ParsePartition memvalidasi dan menormalkan tuple partisi.
// Asia tidak punya base: selalu dinormalkan ke "all".
func ParsePartition(source, dim, base string) (Partition, error) {
	s := Source(strings.ToLower(strings.TrimSpace(source)))
	d := strings.ToLower(strings.TrimSpace(dim))
	b := strings.ToLower(strings.TrimSpace(base))
	if b == "" {
		b = BaseAll
	}

	switch s {
	case SourceOTP:
		switch d {
		case RegionAsia:
			return Partition{SourceOTP, RegionAsia, BaseAll}, nil
		case RegionIndonesia:
			if b == BaseAll || contains(NamedBases, b) {
				return Partition{SourceOTP, d, b}, nil
			}
		}
	case SourceMatrix:
		if contains(MatrixCategories, d) && (b == BaseAll || contains(NamedBases, b)) {
			return Partition{SourceMatrix, d, b}, nil
		}
	}
	return Partition{}, fmt.Errorf("%w: %s/%s/%s", ErrInvalidPartition, source, dim, base)
}

func (p Partition) String() string { return fmt.Sprintf("%s/%s/%s", p.Source, p.Dimension, p.Base) }

// StorageKey: key dokumen di local store.
func (p Partition) StorageKey() string {
	if p.Source == SourceOTP {
		if p.Dimension == RegionAsia {
			return "otp/asia"
		}
		if p.Base == BaseAll {
			return "otp/" + p.Dimension
		}
		return "otp/" + p.Dimension + "_" + p.Base
	}
	if p.Base == BaseAll {
		return "matrix/" + p.Dimension
	}
	return "matrix/" + p.Dimension + "_" + p.Base
}

// IsMerged: hanya OTP indonesia/all yang disintesis dari base bernama.
// Matrix <category>/all punya dataset sendiri.
func (p Partition) IsMerged() bool {
	return p.Source == SourceOTP && p.Dimension == RegionIndonesia && p.Base == BaseAll
}

// ProgramType: diskriminator di tabel remote (otp | matrix_{category}).
func (p Partition) ProgramType() string {
	if p.Source == SourceMatrix {
		return "matrix_" + p.Dimension
	}
	return string(SourceOTP)
}

func (p Partition) Region() string {
	if p.Source == SourceOTP {
		return p.Dimension
	}
	return RegionIndonesia
}

// Category: OTP masuk kategori "other" di tampilan gabungan.
func (p Partition) Category() string {
	if p.Source == SourceMatrix {
		return p.Dimension
	}
	return "other"
}

// NamedChildren: partisi per-base yang membentuk partisi "all".
func (p Partition) NamedChildren() []Partition {
	if !p.IsMerged() {
		return nil
	}
	out := make([]Partition, 0, len(MergeBases))
	for _, b := range MergeBases {
		out = append(out, Partition{p.Source, p.Dimension, b})
	}
	return out
}

func (p Partition) UnifiedID(programID int) string {
	return fmt.Sprintf("%s_%s_%s_%d", p.Source, p.Dimension, p.Base, programID)
}

// ParseUnifiedID memecah "{source}_{dim}_{base}_{id}" kembali ke partisi + id numerik.
func ParseUnifiedID(id string) (Partition, int, error) {
	parts := strings.Split(strings.TrimSpace(id), "_")
	if len(parts) < 4 {
		return Partition{}, 0, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	p, err := ParsePartition(parts[0], parts[1], parts[2])
	if err != nil {
		return Partition{}, 0, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	n, err := strconv.Atoi(parts[3])
	if err != nil {
		return Partition{}, 0, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	return p, n, nil
}
