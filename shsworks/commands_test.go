package shsworks_test

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/shsworks"
	"github.com/ArcetriAdaptiveOptics/go-shsworks/simulator"
)

func newSimClient(t *testing.T, opts ...simulator.Option) (*simulator.Simulator, *shsworks.Client) {
	t.Helper()

	sim := simulator.New(opts...)
	require.NoError(t, sim.Start("127.0.0.1:0"))
	t.Cleanup(func() { _ = sim.Close() })

	addr := sim.Addr().(*net.TCPAddr)
	cfg, err := shsworks.NewConnectionConfig(addr.IP.String(), addr.Port,
		shsworks.WithQuiet(true),
		shsworks.WithRecvTimeout(2*time.Second),
	)
	require.NoError(t, err)

	client := shsworks.NewClient(cfg)
	t.Cleanup(func() { _ = client.Close() })

	return sim, client
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t, simulator.WithVersion("12.000.1 (SVN1178) (September 8 2020)"))

	version, err := client.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "12.000.1 (SVN1178) (September 8 2020)", version)
}

func TestSetParGetParRoundTrip(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	_, err := client.SetPar("dWavelength", 632.8)
	require.NoError(t, err)

	value, err := client.GetPar("dWavelength")
	require.NoError(t, err)
	assert.True(t, value.IsNumeric())
	assert.InDelta(t, 632.8, value.Float64(), 1e-9)

	_, err = client.SetPar("cpOperator", "jdoe")
	require.NoError(t, err)

	operator, err := client.GetPar("cpOperator")
	require.NoError(t, err)
	assert.False(t, operator.IsNumeric())
	assert.Equal(t, "jdoe", operator.String())
}

func TestGetPar_Unknown(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	_, err := client.GetPar("cpDoesNotExist")
	require.ErrorIs(t, err, shsworks.ErrCommandFailed)
	assert.Contains(t, err.Error(), "unknown parameter")
}

func TestGetCamSettings(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	settings, err := client.GetCamSettings()
	require.NoError(t, err)
	require.Contains(t, settings, "SHS")
	require.Contains(t, settings, "VCC")

	ave := settings["SHS"]["AVE"]
	require.True(t, ave.IsNumeric())
	assert.True(t, ave.Number().IsInt())
	assert.Equal(t, int64(8), ave.Int())

	gai := settings["VCC"]["GAI"]
	require.True(t, gai.IsNumeric())
	assert.False(t, gai.Number().IsInt())
	assert.InDelta(t, 1.0, gai.Float64(), 1e-9)
}

func TestGetFieldStats(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	stats, err := client.GetFieldStats(33, "ORG")
	require.NoError(t, err)
	assert.InDelta(t, 0.89784889997, stats.XMin, 1e-12)
	assert.InDelta(t, 6.8835082331, stats.YMax, 1e-12)
	assert.InDelta(t, 13.31289761, stats.PV, 1e-9)
	assert.InDelta(t, 3.1642929445, stats.RMS, 1e-12)

	_, err = client.GetFieldStats(33, "BOTH")
	require.ErrorIs(t, err, shsworks.ErrInvalidArgument)
}

func TestEvaluation(t *testing.T) {
	t.Parallel()

	sim, client := newSimClient(t)
	sim.SetPFItem(0, simulator.PFItem{Name: "Piston", Value: 1.5, Use: true})
	sim.SetPFItem(3, simulator.PFItem{Name: "RMS", Value: 0.25, Use: true})

	results, err := client.Evaluation()
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 0, results[0].Index)
	assert.InDelta(t, 1.5, results[0].Value.Float64(), 1e-9)
	assert.Equal(t, 3, results[1].Index)
	assert.InDelta(t, 0.25, results[1].Value.Float64(), 1e-9)

	byIndex := results.Map()
	require.Contains(t, byIndex, 3)
	assert.InDelta(t, 0.25, byIndex[3].Float64(), 1e-9)
}

func TestGetPFIndices_Disambiguation(t *testing.T) {
	t.Parallel()

	t.Run("pass/fail disabled", func(t *testing.T) {
		t.Parallel()

		sim, client := newSimClient(t)
		sim.SetParam("bPassFail", "0")

		_, err := client.GetPFIndices()
		require.ErrorIs(t, err, shsworks.ErrPassFailDisabled)
	})

	t.Run("no items selected", func(t *testing.T) {
		t.Parallel()

		_, client := newSimClient(t)

		_, err := client.GetPFIndices()
		require.ErrorIs(t, err, shsworks.ErrNoPFItemsSelected)
	})
}

func TestGetPFNamesMap(t *testing.T) {
	t.Parallel()

	sim, client := newSimClient(t)
	sim.SetPFItem(0, simulator.PFItem{Name: "Piston", Value: 1.5, Use: true})
	sim.SetPFItem(2, simulator.PFItem{Name: "Power", Value: -0.1, Use: true})
	sim.SetPFItem(5, simulator.PFItem{Name: "Astig", Value: 0.02, Use: false})

	names, err := client.GetPFNamesMap()
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "Piston", 2: "Power"}, names)
}

func TestPFItemUse(t *testing.T) {
	t.Parallel()

	sim, client := newSimClient(t)
	sim.SetPFItem(4, simulator.PFItem{Name: "Coma", Value: 0.5})

	use, err := client.GetPFItemUse(4)
	require.NoError(t, err)
	assert.False(t, use)

	_, err = client.SetPFItemUse(4, true)
	require.NoError(t, err)

	use, err = client.GetPFItemUse(4)
	require.NoError(t, err)
	assert.True(t, use)

	value, err := client.GetPFItemValue(4)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, value.Float64(), 1e-9)

	pass, err := client.GetPFItemResult(4)
	require.NoError(t, err)
	assert.True(t, pass)
}

func TestBusyRecoveryAgainstLiveMode(t *testing.T) {
	t.Parallel()

	sim, client := newSimClient(t)

	_, err := client.OpenLive()
	require.NoError(t, err)
	assert.True(t, sim.LiveMode())

	// Live mode blocks the next command; the client stops the live video and
	// retransmits on its own.
	_, err = client.Test()
	require.NoError(t, err)
	assert.False(t, sim.LiveMode())
	assert.Equal(t, uint64(1), client.Metrics().BusyRetryCount.Load())
}

func TestSHSFreerunState(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	enabled, err := client.GetSHSFreerunState()
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = client.SetSHSFreerunState(true)
	require.NoError(t, err)

	enabled, err = client.GetSHSFreerunState()
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestUnknownOpcodeAnswer(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	_, err := client.SendCommand(77)
	require.ErrorIs(t, err, shsworks.ErrUnknownCommand)
}

func TestLoadFileValidation(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	dir := t.TempDir()
	wavefront := filepath.Join(dir, "sample.big")
	require.NoError(t, os.WriteFile(wavefront, []byte("data"), 0o644))
	workspace := filepath.Join(dir, "session.shw")
	require.NoError(t, os.WriteFile(workspace, []byte("data"), 0o644))

	_, err := client.LoadFile(filepath.Join(dir, "missing.big"), "")
	require.ErrorIs(t, err, shsworks.ErrInvalidArgument)

	_, err = client.LoadFile(wavefront, "SIDEWAYS")
	require.ErrorIs(t, err, shsworks.ErrInvalidArgument)

	_, err = client.LoadFile(workspace, "ORG")
	require.ErrorIs(t, err, shsworks.ErrInvalidArgument)

	_, err = client.LoadFile(wavefront, "BOTH")
	require.NoError(t, err)

	_, err = client.SaveFile(filepath.Join(dir, "out.exe"), "")
	require.ErrorIs(t, err, shsworks.ErrInvalidArgument)

	_, err = client.SaveFile(filepath.Join(dir, "out.txt"), "ORG")
	require.NoError(t, err)
}

func TestSetCamSettingValidation(t *testing.T) {
	t.Parallel()

	_, client := newSimClient(t)

	_, err := client.SetCamSetting("SHS", "ZZZ", 1)
	require.ErrorIs(t, err, shsworks.ErrInvalidArgument)

	_, err = client.SetCamSetting("ABC", "GAI", 1)
	require.ErrorIs(t, err, shsworks.ErrInvalidArgument)

	_, err = client.SetCamSetting("SHS", "AVE", 16)
	require.NoError(t, err)
}

func TestSelectPFItems(t *testing.T) {
	t.Parallel()

	sim, client := newSimClient(t)
	sim.SetPFItem(0, simulator.PFItem{Name: "Piston", Value: 1.0, Use: true})
	sim.SetPFItem(1, simulator.PFItem{Name: "TiltX", Value: 2.0})

	require.NoError(t, client.SelectPFItems([]int{1}))

	indices, err := client.GetPFIndices()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, indices)
}
