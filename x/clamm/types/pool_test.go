package types

import (
	"strings"
	"testing"

	"cosmossdk.io/math"
)

func TestAmpGamma_At(t *testing.T) {
	ag := AmpGamma{
		InitialAmp:   math.LegacyNewDec(40),
		InitialGamma: math.LegacyMustNewDecFromStr("0.0001"),
		FutureAmp:    math.LegacyNewDec(80),
		FutureGamma:  math.LegacyMustNewDecFromStr("0.0002"),
		InitialTime:  1000,
		FutureTime:   2000,
	}

	tests := []struct {
		name      string
		now       int64
		wantAmp   string
		wantGamma string
	}{
		{"before the window", 500, "40", "0.0001"},
		{"at the start", 1000, "40", "0.0001"},
		{"quarter through", 1250, "50", "0.000125"},
		{"halfway", 1500, "60", "0.00015"},
		{"at the end", 2000, "80", "0.0002"},
		{"after the window", 3000, "80", "0.0002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amp, gamma := ag.At(tt.now)
			if !amp.Equal(math.LegacyMustNewDecFromStr(tt.wantAmp)) {
				t.Errorf("At(%d) amp = %s, want %s", tt.now, amp, tt.wantAmp)
			}
			if !gamma.Equal(math.LegacyMustNewDecFromStr(tt.wantGamma)) {
				t.Errorf("At(%d) gamma = %s, want %s", tt.now, gamma, tt.wantGamma)
			}
		})
	}
}

func TestAmpGamma_AtFlatSchedule(t *testing.T) {
	ag := NewAmpGamma(math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.000145"), 1000)
	amp, gamma := ag.At(5000)
	if !amp.Equal(math.LegacyNewDec(40)) {
		t.Errorf("flat schedule amp = %s, want 40", amp)
	}
	if !gamma.Equal(math.LegacyMustNewDecFromStr("0.000145")) {
		t.Errorf("flat schedule gamma = %s, want 0.000145", gamma)
	}
}

func TestAmpGamma_ValidatePromotion(t *testing.T) {
	ag := NewAmpGamma(math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.000145"), 0)
	now := int64(1000)
	gamma := math.LegacyMustNewDecFromStr("0.000145")

	tests := []struct {
		name       string
		futureAmp  math.LegacyDec
		futureTime int64
		wantErr    string
	}{
		{"valid doubling", math.LegacyNewDec(80), now + 2*MinAmpChangingTime, ""},
		{"too soon", math.LegacyNewDec(80), now + 60, "future_time"},
		{"amp out of global bounds", math.LegacyNewDec(200_000), now + 2*MinAmpChangingTime, "amp must be within"},
		{"change above 10x", math.LegacyNewDec(4000), now + 2*MinAmpChangingTime, "amp change"},
		{"change below 1/10x", math.LegacyNewDec(2), now + 2*MinAmpChangingTime, "amp change"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ag.ValidatePromotion(tt.futureAmp, gamma, tt.futureTime, now)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidatePromotion() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidatePromotion() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPoolParams_Validate(t *testing.T) {
	valid := func() PoolParams {
		return PoolParams{
			MidFee:               math.LegacyMustNewDecFromStr("0.0026"),
			OutFee:               math.LegacyMustNewDecFromStr("0.0045"),
			FeeGamma:             math.LegacyMustNewDecFromStr("0.00023"),
			RepegProfitThreshold: math.LegacyMustNewDecFromStr("0.000002"),
			MinPriceScaleDelta:   math.LegacyMustNewDecFromStr("0.000146"),
			MaHalfTime:           600,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*PoolParams)
		wantErr string
	}{
		{"valid", func(*PoolParams) {}, ""},
		{"negative mid fee", func(p *PoolParams) { p.MidFee = math.LegacyNewDec(-1) }, "mid_fee must be non-negative"},
		{"fee above one", func(p *PoolParams) { p.OutFee = math.LegacyNewDec(2) }, "fees must be within"},
		{"mid above out", func(p *PoolParams) { p.MidFee = math.LegacyMustNewDecFromStr("0.01") }, "exceeds out_fee"},
		{"zero fee gamma", func(p *PoolParams) { p.FeeGamma = math.LegacyZeroDec() }, "fee_gamma must be positive"},
		{"delta at one", func(p *PoolParams) { p.MinPriceScaleDelta = math.LegacyOneDec() }, "min_price_scale_delta"},
		{"zero half time", func(p *PoolParams) { p.MaHalfTime = 0 }, "ma_half_time must be positive"},
		{
			"invalid fee share",
			func(p *PoolParams) { p.FeeShare = &FeeShareConfig{Bps: 0, Recipient: validOwner} },
			"fee share bps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid()
			tt.mutate(&params)
			err := params.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestFeeShareConfig_Validate(t *testing.T) {
	cfg := FeeShareConfig{Bps: 1000, Recipient: validOwner}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error at the cap: %v", err)
	}

	cfg.Bps = MaxFeeShareBps + 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error above the bps cap")
	}

	cfg = FeeShareConfig{Bps: 100, Recipient: "invalid"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid recipient")
	}
}

func TestPool_AssetIndex(t *testing.T) {
	pool := Pool{BaseDenom: "ubase", QuoteDenom: "uquote"}

	i, err := pool.AssetIndex("ubase")
	if err != nil || i != 0 {
		t.Errorf("AssetIndex(ubase) = %d, %v, want 0, nil", i, err)
	}
	i, err = pool.AssetIndex("uquote")
	if err != nil || i != 1 {
		t.Errorf("AssetIndex(uquote) = %d, %v, want 1, nil", i, err)
	}
	if _, err = pool.AssetIndex("uatom"); err == nil {
		t.Error("expected error for a foreign denom")
	}
}

func TestPool_ScaledReserves(t *testing.T) {
	pool := Pool{
		BaseDenom:      "ubase",
		QuoteDenom:     "uquote",
		BasePrecision:  6,
		QuotePrecision: 6,
		BaseReserve:    math.NewInt(100_000_000000),
		QuoteReserve:   math.NewInt(50_000_000000),
		PriceScale:     math.LegacyNewDec(2),
	}

	xs := pool.ScaledReserves()
	if !xs[0].Equal(math.LegacyNewDec(100_000)) {
		t.Errorf("scaled base = %s, want 100000", xs[0])
	}
	// the quote side is pre-multiplied by the price scale
	if !xs[1].Equal(math.LegacyNewDec(100_000)) {
		t.Errorf("scaled quote = %s, want 100000", xs[1])
	}
}

func TestPool_Validate(t *testing.T) {
	valid := func() Pool {
		return Pool{
			Id:             1,
			BaseDenom:      "ubase",
			QuoteDenom:     "uquote",
			BasePrecision:  6,
			QuotePrecision: 6,
			BaseReserve:    math.NewInt(1000),
			QuoteReserve:   math.NewInt(1000),
			AmpGamma:       NewAmpGamma(math.LegacyNewDec(40), math.LegacyMustNewDecFromStr("0.000145"), 0),
			Params: PoolParams{
				MidFee:               math.LegacyMustNewDecFromStr("0.0026"),
				OutFee:               math.LegacyMustNewDecFromStr("0.0045"),
				FeeGamma:             math.LegacyMustNewDecFromStr("0.00023"),
				RepegProfitThreshold: math.LegacyMustNewDecFromStr("0.000002"),
				MinPriceScaleDelta:   math.LegacyMustNewDecFromStr("0.000146"),
				MaHalfTime:           600,
			},
			PriceScale:    math.LegacyOneDec(),
			LastPrice:     math.LegacyOneDec(),
			OraclePrice:   math.LegacyOneDec(),
			XcpProfit:     math.LegacyOneDec(),
			XcpProfitReal: math.LegacyOneDec(),
			TotalShares:   math.NewInt(1000),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Pool)
		wantErr string
	}{
		{"valid", func(*Pool) {}, ""},
		{"zero id", func(p *Pool) { p.Id = 0 }, "pool id cannot be zero"},
		{"same denoms", func(p *Pool) { p.QuoteDenom = p.BaseDenom }, "pool assets must differ"},
		{"precision too high", func(p *Pool) { p.BasePrecision = 19 }, "precision exceeds"},
		{"negative reserve", func(p *Pool) { p.BaseReserve = math.NewInt(-1) }, "reserves must be non-negative"},
		{"zero price scale", func(p *Pool) { p.PriceScale = math.LegacyZeroDec() }, "must be positive"},
		{
			"real profit above nominal",
			func(p *Pool) { p.XcpProfitReal = math.LegacyNewDec(2) },
			"xcp_profit_real exceeds xcp_profit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := valid()
			tt.mutate(&pool)
			err := pool.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
