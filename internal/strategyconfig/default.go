package strategyconfig

// Default returns the built-in fund strategy.
// config/strategy/fund_default.yaml carries the same values.
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "fund_default",
			Version:    "1.0.0",
		},
		Categories: []CategoryRule{
			{Keyword: "large & mid cap", Category: "large_mid_cap"},
			{Keyword: "large and mid cap", Category: "large_mid_cap"},
			{Keyword: "large cap", Category: "large_cap"},
			{Keyword: "mid cap", Category: "mid_cap"},
			{Keyword: "small cap", Category: "small_cap"},
			{Keyword: "flexi cap", Category: "flexi_cap"},
			{Keyword: "multi cap", Category: "multi_cap"},
			{Keyword: "index fund", Category: "index_fund"},
			{Keyword: "elss", Category: "elss"},
			{Keyword: "ultra short duration", Category: "ultra_short_duration"},
			{Keyword: "low duration", Category: "low_duration"},
			{Keyword: "money market", Category: "money_market"},
			{Keyword: "overnight", Category: "overnight"},
			{Keyword: "liquid", Category: "liquid"},
			{Keyword: "corporate bond", Category: "corporate_bond"},
			{Keyword: "gilt", Category: "gilt"},
			{Keyword: "banking and psu", Category: "banking_psu"},
			{Keyword: "gold", Category: "gold"},
			{Keyword: "commodit", Category: "commodity"},
			{Keyword: "sectoral", Category: "thematic"},
			{Keyword: "thematic", Category: "thematic"},
		},
		NameRules: []CategoryRule{
			{Keyword: "bluechip", Category: "large_cap"},
			{Keyword: "large cap", Category: "large_cap"},
			{Keyword: "midcap", Category: "mid_cap"},
			{Keyword: "mid cap", Category: "mid_cap"},
			{Keyword: "smallcap", Category: "small_cap"},
			{Keyword: "small cap", Category: "small_cap"},
			{Keyword: "flexi", Category: "flexi_cap"},
			{Keyword: "tax saver", Category: "elss"},
			{Keyword: "elss", Category: "elss"},
			{Keyword: "nifty", Category: "index_fund"},
			{Keyword: "sensex", Category: "index_fund"},
			{Keyword: "index", Category: "index_fund"},
			{Keyword: "liquid", Category: "liquid"},
			{Keyword: "overnight", Category: "overnight"},
			{Keyword: "gilt", Category: "gilt"},
			{Keyword: "gold", Category: "gold"},
		},
		Eligibility: Eligibility{
			MinAUMCr:           1000,
			RiskKeywords:       []string{"Credit Risk"},
			ShareClassKeywords: []string{"Direct", "IDCW", "Dividend", "Bonus"},
		},
		Scoring: Scoring{
			Weights: FactorWeights{
				Reliability: 0.30,
				Downside:    0.25,
				Quality:     0.25,
				Momentum:    0.20,
			},
			Neutral: NeutralDefaults{
				PctPosMonths36: 0.5,
				MaxDrawdown:    -0.5,
				Sharpe:         0,
				AnnVol:         0.20,
				Ret3M:          0,
				Ret6M:          0,
				RetConsistency: 0,
			},
			DebtPenalty: DebtPenalty{
				UpperVol:     0.05,
				UpperPenalty: 25,
				LowerVol:     0.03,
				LowerPenalty: 10,
			},
			Tiers: Tiers{
				ElitePct:  0.15,
				StrongPct: 0.30,
			},
			StandoutThreshold: 0.8,
		},
		Allocation: Allocation{
			AgeAnchor:    110,
			AgeMinEquity: 0.10,
			AgeMaxEquity: 0.90,
			RiskBase: RiskTable{
				High:  0.80,
				Low:   0.20,
				Other: 0.50,
			},
			HighRiskBonus:  0.10,
			LowRiskPenalty: 0.15,
			ShortHorizon: ShortHorizon{
				Years:     3,
				Reduction: 0.25,
			},
			PhaseMultipliers: PhaseMultipliers{
				Overheated:  0.85,
				Undervalued: 1.10,
			},
			Commodity: CommodityCarveOut{
				MinAmount: 500000,
				Weight:    0.10,
			},
		},
		Slots: Slots{
			EquityStandard: []Slot{
				{Name: "Large Cap Core", Weight: 0.50, Categories: []string{"large_cap"}, Fallback: []string{"index_fund"}},
				{Name: "Mid Cap Growth", Weight: 0.30, Categories: []string{"mid_cap"}},
				{Name: "Small Cap Alpha", Weight: 0.20, Categories: []string{"small_cap"}},
			},
			EquityDefensive: []Slot{
				{Name: "Large Cap Core", Weight: 0.60, Categories: []string{"large_cap"}, Fallback: []string{"index_fund"}},
				{Name: "Flexi Cap Stability", Weight: 0.40, Categories: []string{"flexi_cap"}},
			},
			DebtStandard: []Slot{
				{Name: "Liquid Safety", Weight: 0.60, Categories: []string{"liquid"}, Fallback: []string{"overnight", "money_market"}},
				{Name: "Corporate Bond Yield", Weight: 0.40, Categories: []string{"corporate_bond"}, FallbackAnyInClass: true},
			},
			DebtDefensive: []Slot{
				{Name: "Liquid Safety", Weight: 0.60, Categories: []string{"liquid"}, Fallback: []string{"overnight", "money_market"}},
				{Name: "Gilt Yield", Weight: 0.40, Categories: []string{"gilt"}, FallbackAnyInClass: true},
			},
			Commodity: []Slot{
				{Name: "Commodity Hedge", Weight: 1.0, Categories: []string{"commodity"}, Fallback: []string{"gold"}},
			},
		},
		Confidence: Confidence{
			Base:                    70,
			OverheatedDebtMin:       0.4,
			OverheatedDebtBonus:     10,
			OverheatedEquityMax:     0.6,
			OverheatedEquityPenalty: 10,
			UndervaluedEquityMin:    0.6,
			UndervaluedEquityBonus:  10,
			QualityBonusMax:         20,
			Cap:                     99,
			HighLabelAbove:          80,
			ModerateLabelAbove:      50,
		},
		Simulation: Simulation{
			Scenarios: []Scenario{
				{
					ID:          "2008_CRASH",
					Description: "Global Financial Crisis",
					Equity:      -0.55, Debt: 0.08, Liquid: 0.05,
					LargeCapAdj: 0.05, SmallCapAdj: -0.10,
				},
				{
					ID:          "2020_COVID",
					Description: "COVID-19 Crash",
					Equity:      -0.38, Debt: 0.06, Liquid: 0.04,
					LargeCapAdj: 0.05, SmallCapAdj: -0.10,
				},
				{
					ID:          "2022_RATES",
					Description: "Rate Hike Correction",
					Equity:      -0.10, Debt: -0.02, Liquid: 0.03,
					LargeCapAdj: 0.05, SmallCapAdj: -0.10,
				},
			},
		},
		Market: Market{
			SMAWindow:            200,
			VolWindow:            30,
			OverheatedDeviation:  0.15,
			UndervaluedDeviation: -0.10,
			VolatileAbove:        20,
			StableBelow:          10,
			TradingDaysPerYear:   252,
		},
	}
}
