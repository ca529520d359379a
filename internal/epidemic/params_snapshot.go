package epidemic

import (
	"strconv"

	"pca-sim/internal/core"
)

// Parameters describes the configuration the board runs with.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				intParam("size", "Size", c.Size),
				intParam("sub_steps", "Sub-steps per day", c.SubSteps),
				floatParam("scale", "Scale factor", c.Scale),
				int64Param("seed", "Seed", c.Seed),
			},
		},
		{
			Name: "Reaction",
			Params: []core.Parameter{
				stringParam("model", "Model", c.Model.String()),
				floatParam("rate_vv", "Virus self rate", c.Rates.VirusSelf),
				floatParam("rate_va", "Virus-antibody rate", c.Rates.VirusAntibody),
				floatParam("rate_av", "Antibody-virus rate", c.Rates.AntibodyVirus),
				floatParam("rate_decay", "Antibody decay", c.Rates.AntibodyDecay),
				floatParam("saturation", "Saturation", c.Saturation),
				boolParam("coupling", "Virus-load coupling", c.VirusLoadCoupling),
			},
		},
		{
			Name: "Diffusion",
			Params: []core.Parameter{
				stringParam("kernel", "Kernel", c.Kernel.String()),
			},
		},
		{
			Name: "Stochastic",
			Params: []core.Parameter{
				floatParam("prob_infected", "Initial infection chance", c.ProbInfected),
				floatParam("virus_init", "Initial virus load", c.VirusInit),
				floatParam("variation", "Per-cell rate variation", c.Variation),
				floatParam("fluctuation", "Per-update fluctuation", c.Fluctuation),
			},
		},
		{
			Name: "Classification",
			Params: []core.Parameter{
				floatParam("threshold_infected", "Infected threshold", c.Thresholds.Infected),
				floatParam("threshold_recovered", "Recovered threshold", c.Thresholds.Recovered),
			},
		},
	}}
}

// Parameters describes the running board's configuration.
func (s *Sim) Parameters() core.ParameterSnapshot { return s.cfg.Parameters() }

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func int64Param(key, label string, v int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}

func floatParam(key, label string, v float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

func boolParam(key, label string, v bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(v)}
}

func stringParam(key, label, v string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: v}
}
