// Package pipestress runs the pressure-design code checks for a pipe
// run: Barlow hoop stress against the material allowable, pressure
// design thickness, hydrostatic test pressure, and the B31.5 branch
// reinforcement area balance when branch geometry is supplied.
package pipestress

import (
	"fmt"
	"math"

	"Frostline/internal/calcerr"
	"Frostline/internal/compliance"
	"Frostline/internal/props"
)

// yCoefficient is the B31.5 table 304.1.1 coefficient for ferritic
// steel below 900 F.
const yCoefficient = 0.4

// Branch describes a branch connection on the run for the area
// replacement check. Angle is measured between branch and header axes.
type Branch struct {
	ODIn     float64 `json:"od_in"`
	WallIn   float64 `json:"wall_in"`
	AngleDeg float64 `json:"angle_deg"` // 0 -> 90
	// PadAreaIn2 is reinforcement metal added at the opening: pad plus
	// attachment welds, one side of the header centerline.
	PadAreaIn2 float64 `json:"pad_area_in2"`
}

type Input struct {
	// Nominal and Schedule select dimensions from the pipe table when
	// ODIn/WallIn are zero.
	Nominal  string  `json:"nominal"`
	Schedule string  `json:"schedule"`
	ODIn     float64 `json:"od_in"`
	WallIn   float64 `json:"wall_in"`

	Material        string  `json:"material"`
	JointEfficiency float64 `json:"joint_efficiency"` // 0 -> 1.0, seamless
	DesignPsig      float64 `json:"design_psig"`
	DesignTempF     float64 `json:"design_temp_f"`
	CorrosionIn     float64 `json:"corrosion_in"`
	// TestFactor multiplies design pressure for the hydrostatic test;
	// 0 selects the 1.5 default.
	TestFactor float64 `json:"test_factor"`

	Branch *Branch `json:"branch,omitempty"`
}

// BranchResult is the area balance of the reinforcement check.
type BranchResult struct {
	RequiredAreaIn2  float64 `json:"required_area_in2"`
	HeaderExcessIn2  float64 `json:"header_excess_in2"`
	BranchExcessIn2  float64 `json:"branch_excess_in2"`
	PadAreaIn2       float64 `json:"pad_area_in2"`
	AvailableAreaIn2 float64 `json:"available_area_in2"`
	ShortfallIn2     float64 `json:"shortfall_in2"`
	OK               bool    `json:"ok"`
}

type Result struct {
	ODIn            float64 `json:"od_in"`
	WallIn          float64 `json:"wall_in"`
	HoopStressPsi   float64 `json:"hoop_stress_psi"`
	AllowablePsi    float64 `json:"allowable_psi"`
	RequiredWallIn  float64 `json:"required_wall_in"`
	TestPsig        float64 `json:"test_psig"`
	TestCeilingPsig float64 `json:"test_ceiling_psig"`
	OKStress        bool    `json:"ok_stress"`

	Branch *BranchResult `json:"branch,omitempty"`

	Flags compliance.Flags `json:"flags,omitempty"`
	Notes string           `json:"notes"`
}

// Calculate runs the pressure-design checks for one pipe run.
func Calculate(in Input, cat *props.Catalog) (Result, error) {
	if in.JointEfficiency == 0 {
		in.JointEfficiency = 1.0
	}
	if in.TestFactor == 0 {
		in.TestFactor = 1.5
	}
	if in.ODIn == 0 && in.Nominal != "" {
		p, err := cat.Pipe(in.Nominal, in.Schedule)
		if err != nil {
			return Result{}, err
		}
		in.ODIn, in.WallIn = p.ODIn, p.WallIn
	}
	if err := validate(in); err != nil {
		return Result{}, err
	}

	allow, err := cat.AllowableStress(in.Material, in.DesignTempF)
	if err != nil {
		return Result{}, err
	}

	var res Result
	res.ODIn = in.ODIn
	res.WallIn = in.WallIn
	res.AllowablePsi = allow

	// Net wall after corrosion allowance carries the pressure.
	tNet := in.WallIn - in.CorrosionIn
	if tNet <= 0 {
		return Result{}, calcerr.Invalid("corrosion_in", "consumes the full wall")
	}

	// Barlow: S = P D / (2 t E).
	res.HoopStressPsi = in.DesignPsig * in.ODIn / (2.0 * tNet * in.JointEfficiency)
	res.OKStress = res.HoopStressPsi <= allow
	if !res.OKStress {
		res.Flags.Add(compliance.Error, "ASME B31.5 302.3",
			fmt.Sprintf("hoop stress %.0f psi exceeds allowable %.0f psi", res.HoopStressPsi, allow))
	}

	// Pressure design thickness, B31.5 304.1.2: t = P D / (2 (S E + P y)),
	// plus the corrosion allowance back on top.
	res.RequiredWallIn = in.DesignPsig*in.ODIn/(2.0*(allow*in.JointEfficiency+in.DesignPsig*yCoefficient)) + in.CorrosionIn
	if res.RequiredWallIn > in.WallIn {
		res.Flags.Add(compliance.Error, "ASME B31.5 304.1.2",
			fmt.Sprintf("wall %.3f in below required %.3f in", in.WallIn, res.RequiredWallIn))
	}

	// Hydrostatic test at TestFactor x design, capped by the pressure
	// that brings hoop stress to the allowable on the as-built wall.
	res.TestPsig = in.TestFactor * in.DesignPsig
	res.TestCeilingPsig = 2.0 * allow * in.JointEfficiency * tNet / in.ODIn
	if res.TestPsig > res.TestCeilingPsig {
		res.Flags.Add(compliance.Warning, "ASME B31.5 345.4.2",
			fmt.Sprintf("test pressure %.0f psig limited to %.0f psig by wall stress", res.TestPsig, res.TestCeilingPsig))
		res.TestPsig = res.TestCeilingPsig
	}

	if in.Branch != nil {
		br, flags, err := checkBranch(in, *in.Branch, allow)
		if err != nil {
			return Result{}, err
		}
		res.Branch = &br
		res.Flags = append(res.Flags, flags...)
	}

	res.Notes = "B31.5 pressure design check; branch per area replacement where given."
	return res, nil
}

// checkBranch performs the 504.3.1 area replacement balance. Required
// area comes from the pressure design thickness of the header over the
// effective opening; available area is excess header wall, excess
// branch wall within the reinforcement zone, and added pad metal.
func checkBranch(in Input, b Branch, allow float64) (BranchResult, compliance.Flags, error) {
	if b.ODIn <= 0 || b.WallIn <= 0 {
		return BranchResult{}, nil, calcerr.Invalid("branch", "branch diameter and wall must be positive")
	}
	if b.ODIn > in.ODIn {
		return BranchResult{}, nil, calcerr.Invalid("branch", "branch larger than header")
	}
	if b.AngleDeg == 0 {
		b.AngleDeg = 90.0
	}
	if b.AngleDeg < 45.0 || b.AngleDeg > 90.0 {
		return BranchResult{}, nil, calcerr.Invalid("branch", "angle outside [45,90] degrees")
	}
	sinB := math.Sin(b.AngleDeg * math.Pi / 180.0)

	// Pressure design thicknesses, corrosion excluded from the balance.
	tmh := in.DesignPsig * in.ODIn / (2.0 * (allow*in.JointEfficiency + in.DesignPsig*yCoefficient))
	tmb := in.DesignPsig * b.ODIn / (2.0 * (allow*in.JointEfficiency + in.DesignPsig*yCoefficient))

	tHead := in.WallIn - in.CorrosionIn
	tBr := b.WallIn - in.CorrosionIn
	if tBr <= 0 {
		return BranchResult{}, nil, calcerr.Invalid("branch", "corrosion allowance consumes the branch wall")
	}

	// Effective opening along the header axis.
	d1 := (b.ODIn - 2.0*tBr) / sinB

	var br BranchResult
	br.RequiredAreaIn2 = tmh * d1 * (2.0 - sinB)
	br.HeaderExcessIn2 = (tHead - tmh) * d1
	if br.HeaderExcessIn2 < 0 {
		br.HeaderExcessIn2 = 0
	}
	// Reinforcement zone height above the header surface.
	l4 := math.Min(2.5*tHead, 2.5*tBr)
	br.BranchExcessIn2 = 2.0 * l4 * (tBr - tmb) / sinB
	if br.BranchExcessIn2 < 0 {
		br.BranchExcessIn2 = 0
	}
	br.PadAreaIn2 = b.PadAreaIn2
	br.AvailableAreaIn2 = br.HeaderExcessIn2 + br.BranchExcessIn2 + br.PadAreaIn2
	br.OK = br.AvailableAreaIn2 >= br.RequiredAreaIn2

	var flags compliance.Flags
	if !br.OK {
		br.ShortfallIn2 = br.RequiredAreaIn2 - br.AvailableAreaIn2
		flags.Add(compliance.Error, "ASME B31.5 504.3.1",
			fmt.Sprintf("reinforcement deficient by %.3f in2 (required %.3f, available %.3f)",
				br.ShortfallIn2, br.RequiredAreaIn2, br.AvailableAreaIn2))
	}
	return br, flags, nil
}

func validate(in Input) error {
	if in.ODIn <= 0 {
		return calcerr.Invalid("od_in", "outside diameter must be positive")
	}
	if in.WallIn <= 0 {
		return calcerr.Invalid("wall_in", "wall thickness must be positive")
	}
	if in.WallIn >= in.ODIn/2.0 {
		return calcerr.Invalid("wall_in", "wall thickness leaves no bore")
	}
	if in.JointEfficiency <= 0 || in.JointEfficiency > 1 {
		return calcerr.Invalid("joint_efficiency", "outside (0,1]")
	}
	if in.DesignPsig <= 0 {
		return calcerr.Invalid("design_psig", "design pressure must be positive")
	}
	if in.CorrosionIn < 0 {
		return calcerr.Invalid("corrosion_in", "negative corrosion allowance")
	}
	if in.Material == "" {
		return calcerr.Invalid("material", "required")
	}
	return nil
}
