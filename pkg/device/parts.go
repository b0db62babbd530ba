package device

// SLG46620Class returns a small catalog modelled on the SLG46620 family:
// eight IOB pins, a handful of LUTs and flip-flops, two counters, two
// analog comparators sharing one physical input mux, and one ring and one
// LF oscillator. Used by the ACMP-mux-sharing DRC scenarios.
func SLG46620Class() *Part {
	spec := &catalogSpec{
		ID: "SLG46620",
		IOBs: []iobSpec{
			{Name: "IOB1", Pin: 1}, {Name: "IOB2", Pin: 2}, {Name: "IOB3", Pin: 3},
			{Name: "IOB4", Pin: 4}, {Name: "IOB5", Pin: 5}, {Name: "IOB6", Pin: 6},
			{Name: "IOB7", Pin: 7}, {Name: "IOB8", Pin: 8},
		},
		LUTs: []lutSpec{
			{Name: "LUT0", Width: 4}, {Name: "LUT1", Width: 4}, {Name: "LUT2", Width: 3},
		},
		DFFs: []nameSpec{{Name: "DFF0"}, {Name: "DFF1"}},
		Comparators: []cmpSpec{
			{Name: "ACMP0", Ordinal: 0, MuxGroup: "shared0", MuxOwner: true},
			{Name: "ACMP1", Ordinal: 1, MuxGroup: "shared0"},
		},
		Oscillators: []oscSpec{
			{Name: "RINGOSC0", Family: "ring"},
			{Name: "LFOSC0", Family: "lf"},
		},
		Counters:    []widthSpec{{Name: "CNT0", Width: 8}, {Name: "CNT1", Width: 8}},
		VoltageRefs: []nameSpec{{Name: "VREF0"}},
		PGAs:        []nameSpec{{Name: "PGA0"}},
		Matrices:    []string{"A", "B"},
		ACMPGroups:  map[string][]string{"shared0": {"ACMP0", "ACMP1"}},
	}
	return buildFromSpec(spec)
}

// SLG46826Class returns a catalog with no shared analog mux (every
// comparator has a private input mux) and only two counters, used by the
// infeasible-placement scenario (a netlist requiring more counters than
// the target part has).
func SLG46826Class() *Part {
	spec := &catalogSpec{
		ID: "SLG46826",
		IOBs: []iobSpec{
			{Name: "IOB1", Pin: 1}, {Name: "IOB2", Pin: 2}, {Name: "IOB3", Pin: 3},
			{Name: "IOB4", Pin: 4}, {Name: "IOB5", Pin: 5}, {Name: "IOB6", Pin: 6},
		},
		LUTs:        []lutSpec{{Name: "LUT0", Width: 4}, {Name: "LUT1", Width: 3}},
		DFFs:        []nameSpec{{Name: "DFF0"}},
		Comparators: []cmpSpec{{Name: "ACMP0", Ordinal: 0}},
		Oscillators: []oscSpec{{Name: "RINGOSC0", Family: "ring"}, {Name: "LFOSC0", Family: "lf"}},
		Counters:    []widthSpec{{Name: "CNT0", Width: 8}, {Name: "CNT1", Width: 8}},
		Matrices:    []string{"0"},
	}
	return buildFromSpec(spec)
}
