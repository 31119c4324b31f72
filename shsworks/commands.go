package shsworks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/answer"
)

// Per-operation convenience methods. Each supplies the fixed opcode, validates
// its argument shape locally and feeds the raw answer to the matching decoder
// in package answer. Operations with no typed payload return the raw answer
// string.

// camSettingTokens are the camera-setting tokens SetCamSetting accepts.
var camSettingTokens = map[string]struct{}{
	"BUS": {}, "CAM": {}, "TRI": {}, "ASH": {},
	"AVE": {}, "SHU": {}, "BRI": {}, "GAI": {}, "TEM": {},
}

// cameraLabels are the camera group labels SetCamSetting accepts.
var cameraLabels = map[string]struct{}{
	"SHS": {}, "VCC": {}, "SVC": {},
}

// fieldDataExtensions are the file extensions LoadFile and SaveFile accept.
var fieldDataExtensions = map[string]struct{}{
	".big": {}, ".bix": {}, ".shw": {}, ".shz": {}, ".txt": {}, ".sha": {},
}

// workspaceExtensions are the file types that always carry both field parts,
// so LoadFile and SaveFile reject an explicit field part for them.
var workspaceExtensions = map[string]struct{}{
	".shw": {}, ".shz": {}, ".sha": {},
}

// maxFilePathLength is the longest path the remote interface accepts.
const maxFilePathLength = 258

func validFieldPart(part string) bool {
	switch part {
	case "ORG", "REF", "BOTH":
		return true
	default:
		return false
	}
}

// Test requests the standard answer without performing frame reading or
// evaluation.
func (c *Client) Test() (string, error) {
	return c.SendCommand(MIDTest)
}

// OpenLive opens the SHSWorks live video. Live mode blocks every other
// command until CloseLive stops it; the client recovers from that
// automatically, see SendCommand.
func (c *Client) OpenLive() (string, error) {
	return c.SendCommand(MIDOpenLive)
}

// GrabOrg takes a camera frame into the original part of the active data
// field. Use SelectField to select the active field.
func (c *Client) GrabOrg() (string, error) {
	return c.SendCommand(MIDGrabOrg)
}

// GrabRef takes a camera frame into the reference part of the active data
// field.
func (c *Client) GrabRef() (string, error) {
	return c.SendCommand(MIDGrabRef)
}

// Evaluation performs an evaluation and returns the pass/fail results in
// response order, keyed by item index. The item indices come from a second
// round trip (GetPFIndices).
func (c *Client) Evaluation() (answer.PassFailValues, error) {
	ans, err := c.SendCommand(MIDEvaluation)
	if err != nil {
		return nil, err
	}

	indices, err := c.GetPFIndices()
	if err != nil {
		return nil, err
	}

	return answer.Evaluation(ans, indices)
}

// LoadSetup loads the named parameter setup. The name must coincide with an
// existing setup in SHSWorks.
func (c *Client) LoadSetup(setupName string) (string, error) {
	if setupName == "" {
		return "", fmt.Errorf("%w: setup name must not be empty", ErrInvalidArgument)
	}

	return c.SendCommand(MIDLoadSetup, setupName)
}

// ImportPar imports a parameter set from a file. A bare filename refers to the
// "config" sub-folder of the SHSWorks program directory; full paths are also
// accepted.
func (c *Client) ImportPar(parName string) (string, error) {
	if parName == "" {
		return "", fmt.Errorf("%w: parameter file name must not be empty", ErrInvalidArgument)
	}

	return c.SendCommand(MIDImportPar, parName)
}

// GetPFIndices returns the indices of the pass/fail items in use.
//
// An empty answer is disambiguated with a second round trip: the result is
// ErrPassFailDisabled when the pass/fail evaluation is switched off, and
// ErrNoPFItemsSelected when it is on but no items are selected.
func (c *Client) GetPFIndices() ([]int, error) {
	ans, err := c.SendCommand(MIDGetPFIndices)
	if err != nil {
		return nil, err
	}

	nums, err := answer.Numbers(ans)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, c.checkPassFailConfig()
	}

	indices := make([]int, 0, len(nums))
	for _, n := range nums {
		indices = append(indices, int(n.Int()))
	}

	return indices, nil
}

// CloseLive stops the live dialog.
func (c *Client) CloseLive() (string, error) {
	return c.SendCommand(MIDCloseLive)
}

// GetCamSettings retrieves the camera settings per camera group ("SHS", and
// "VCC" when a vision control camera is present), keyed by the same tokens
// SetCamSetting accepts.
func (c *Client) GetCamSettings() (map[string]map[string]answer.Value, error) {
	ans, err := c.SendCommand(MIDGetCamSettings)
	if err != nil {
		return nil, err
	}

	return answer.CamSettings(ans)
}

// SetCamSetting sets one camera parameter; cam selects the camera group
// ("SHS", "VCC" or "SVC"), setting the token, value the new value.
func (c *Client) SetCamSetting(cam string, setting string, value any) (string, error) {
	if _, ok := camSettingTokens[setting]; !ok {
		return "", fmt.Errorf("%w: unknown camera setting token %q", ErrInvalidArgument, setting)
	}
	if _, ok := cameraLabels[cam]; !ok {
		return "", fmt.Errorf("%w: %q does not correspond to a camera", ErrInvalidArgument, cam)
	}

	val, err := formatArg(value)
	if err != nil {
		return "", err
	}

	return c.SendCommand(MIDSetCamSetting, fmt.Sprintf("%s:%s=%s", cam, setting, val))
}

// TiltCalOrg stores the current position of the absolute tilt calculation
// (original part) as calibration position.
func (c *Client) TiltCalOrg() (string, error) {
	return c.SendCommand(MIDTiltCalOrg)
}

// TiltCalRef stores the current position of the absolute tilt calculation
// (reference part) as calibration position.
func (c *Client) TiltCalRef() (string, error) {
	return c.SendCommand(MIDTiltCalRef)
}

// ImportSpotData imports spot data from a text file; path must exist locally.
func (c *Client) ImportSpotData(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: spot data path does not exist: %s", ErrInvalidArgument, path)
	}

	return c.SendCommand(MIDImportSpotData, path)
}

// ExportSpotData exports spot data to a text file at the given full path.
func (c *Client) ExportSpotData(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: spot data path must not be empty", ErrInvalidArgument)
	}

	return c.SendCommand(MIDExportSpotData, path)
}

// EvalSpotData performs an evaluation from spot data, analogously to
// Evaluation.
func (c *Client) EvalSpotData() (answer.PassFailValues, error) {
	ans, err := c.SendCommand(MIDEvalSpotData)
	if err != nil {
		return nil, err
	}

	indices, err := c.GetPFIndices()
	if err != nil {
		return nil, err
	}

	return answer.Evaluation(ans, indices)
}

// SelectField selects the active data field for camera frame reading.
// Field IDs 1-32 address the AUX group; 33 and up address the SHS group
// (measurement, dark measurement, wavefront and derived fields).
func (c *Client) SelectField(fieldID int) (string, error) {
	return c.SendCommand(MIDSelectField, fieldID)
}

// DeleteFields deletes all fields of both the SHS and the AUX group.
func (c *Client) DeleteFields() (string, error) {
	return c.SendCommand(MIDDeleteFields)
}

// CenterSample centers the sample in live mode. Requires the PI-motorization
// functionality and the matching dongle license.
func (c *Client) CenterSample() (string, error) {
	return c.SendCommand(MIDCenterSample)
}

// GetCenterSampleState requests the status of the sample centering run.
func (c *Client) GetCenterSampleState() (string, error) {
	return c.SendCommand(MIDGetCenterSampleState)
}

// GetPFNames returns the names of the pass/fail items that are switched on,
// with the same empty-answer disambiguation as GetPFIndices.
func (c *Client) GetPFNames() ([]string, error) {
	ans, err := c.SendCommand(MIDGetPFNames)
	if err != nil {
		return nil, err
	}

	names, err := answer.Strings(ans)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, c.checkPassFailConfig()
	}

	return names, nil
}

// GetVersion retrieves the SHSWorks version information, e.g.
// "12.000.1 (SVN1178) (September 8 2020)".
func (c *Client) GetVersion() (string, error) {
	ans, err := c.SendCommand(MIDGetVersion)
	if err != nil {
		return "", err
	}

	return answer.Result(ans)
}

// GetFirstZernikeIndex retrieves the index of the first Zernike coefficient in
// the pass/fail list.
func (c *Client) GetFirstZernikeIndex() (int, error) {
	ans, err := c.SendCommand(MIDGetFirstZernikeIndex)
	if err != nil {
		return 0, err
	}

	n, err := answer.ResultNumber(ans)
	if err != nil {
		return 0, err
	}

	return int(n.Int()), nil
}

// GetNumberOfZernikes retrieves the number of Zernike coefficients in the
// pass/fail list.
func (c *Client) GetNumberOfZernikes() (int, error) {
	ans, err := c.SendCommand(MIDGetNumberOfZernikes)
	if err != nil {
		return 0, err
	}

	n, err := answer.ResultNumber(ans)
	if err != nil {
		return 0, err
	}

	return int(n.Int()), nil
}

// GetPFValues retrieves the values of the last pass/fail evaluation, with the
// same empty-answer disambiguation as GetPFIndices. Use together with
// GetPFIndices or GetPFNames to identify the items.
func (c *Client) GetPFValues() ([]answer.Number, error) {
	ans, err := c.SendCommand(MIDGetPFValues)
	if err != nil {
		return nil, err
	}

	values, err := answer.Numbers(ans)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, c.checkPassFailConfig()
	}

	return values, nil
}

// GetTotalPFResult retrieves the last total pass/fail result; false is fail,
// true is pass.
func (c *Client) GetTotalPFResult() (bool, error) {
	ans, err := c.SendCommand(MIDGetTotalPFResult)
	if err != nil {
		return false, err
	}

	return answer.Bool(ans)
}

// GetPar retrieves the value of the named parameter, classified by the
// parameter name: a fixed set of names decode as strings or filesystem paths,
// all others as numbers.
func (c *Client) GetPar(par string) (answer.Value, error) {
	if par == "" {
		return answer.Value{}, fmt.Errorf("%w: parameter name must not be empty", ErrInvalidArgument)
	}

	ans, err := c.SendCommand(MIDGetPar, par)
	if err != nil {
		return answer.Value{}, err
	}

	return answer.Parameter(par, ans)
}

// SetPar sets the value of the named parameter and returns the raw answer.
// The answer echo is decoded once to detect a rejected assignment.
func (c *Client) SetPar(par string, value any) (string, error) {
	if par == "" {
		return "", fmt.Errorf("%w: parameter name must not be empty", ErrInvalidArgument)
	}

	val, err := formatArg(value)
	if err != nil {
		return "", err
	}

	ans, err := c.SendCommand(MIDSetPar, fmt.Sprintf("%s=%s", par, val))
	if err != nil {
		return "", err
	}

	if _, err := answer.Parameter(par, ans); err != nil {
		return "", err
	}

	return ans, nil
}

// GetPFItemValue retrieves the value of one specific pass/fail item.
func (c *Client) GetPFItemValue(pfIndex int) (answer.Number, error) {
	ans, err := c.SendCommand(MIDGetPFItemValue, pfIndex)
	if err != nil {
		return answer.Number{}, err
	}

	return answer.ResultNumber(ans)
}

// GetPFItemResult retrieves the pass/fail result of one specific item; false
// is fail, true is pass.
func (c *Client) GetPFItemResult(pfIndex int) (bool, error) {
	ans, err := c.SendCommand(MIDGetPFItemResult, pfIndex)
	if err != nil {
		return false, err
	}

	return answer.Bool(ans)
}

// LoadFile loads a measurement or workspace file. Supported extensions are
// .big, .bix, .shw, .shz, .txt and .sha; the path must exist locally.
// fieldPart selects "ORG", "REF" or "BOTH" and must be empty for workspace
// file types, which always carry both parts.
func (c *Client) LoadFile(path string, fieldPart string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: path does not exist: %s", ErrInvalidArgument, path)
	}

	return c.sendFileCommand(MIDLoadFile, path, fieldPart)
}

// SaveFile saves the selected field to a measurement or workspace file, with
// the same extension and field part rules as LoadFile.
func (c *Client) SaveFile(path string, fieldPart string) (string, error) {
	return c.sendFileCommand(MIDSaveFile, path, fieldPart)
}

func (c *Client) sendFileCommand(mid int, path string, fieldPart string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := fieldDataExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: invalid SHSWorks extension %q", ErrInvalidArgument, ext)
	}
	if len(path) > maxFilePathLength {
		return "", fmt.Errorf("%w: path longer than %d characters: %s", ErrInvalidArgument, maxFilePathLength, path)
	}

	if fieldPart == "" {
		return c.SendCommand(mid, path)
	}

	if _, ok := workspaceExtensions[ext]; ok {
		return "", fmt.Errorf("%w: field part cannot be specified for file type %q", ErrInvalidArgument, ext)
	}
	if !validFieldPart(fieldPart) {
		return "", fmt.Errorf("%w: field part must be \"ORG\", \"REF\" or \"BOTH\", not %q", ErrInvalidArgument, fieldPart)
	}

	return c.SendCommand(mid, path, fieldPart)
}

// SetOutputPath sets the storage directory for post-evaluation files; path
// must be an existing local directory.
func (c *Client) SetOutputPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: output path must be an existing directory: %s", ErrInvalidArgument, path)
	}

	return c.SendCommand(MIDSetOutputPath, path)
}

// SetOutputName sets the base filename for post-evaluation files.
func (c *Client) SetOutputName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: output name must not be empty", ErrInvalidArgument)
	}

	return c.SendCommand(MIDSetOutputName, name)
}

// CopyDataFromTo copies field data between fields, e.g. from the measurement
// field to an AUX field.
func (c *Client) CopyDataFromTo(fromField int, toField int) (string, error) {
	return c.SendCommand(MIDCopyDataFromTo, fmt.Sprintf("%d-%d", fromField, toField))
}

// GetFieldStats retrieves the statistics block of a field; fieldPart is "ORG"
// or "REF".
func (c *Client) GetFieldStats(fieldID int, fieldPart string) (answer.FieldStats, error) {
	if fieldPart != "ORG" && fieldPart != "REF" {
		return answer.FieldStats{}, fmt.Errorf("%w: field part must be \"ORG\" or \"REF\", not %q", ErrInvalidArgument, fieldPart)
	}

	ans, err := c.SendCommand(MIDGetFieldStats, fieldID, fieldPart)
	if err != nil {
		return answer.FieldStats{}, err
	}

	return answer.Stats(ans)
}

// GetPFItemUse retrieves the "Use" state of one specific pass/fail item.
func (c *Client) GetPFItemUse(pfIndex int) (bool, error) {
	ans, err := c.SendCommand(MIDGetPFItemUse, pfIndex)
	if err != nil {
		return false, err
	}

	return answer.Bool(ans)
}

// SetPFItemUse switches the "Use" state of one specific pass/fail item on or
// off.
func (c *Client) SetPFItemUse(pfIndex int, use bool) (string, error) {
	state := 0
	if use {
		state = 1
	}

	return c.SendCommand(MIDSetPFItemUse, pfIndex, state)
}

// SaveSetup saves the current parameter setup under the given name.
func (c *Client) SaveSetup(setupName string) (string, error) {
	if setupName == "" {
		return "", fmt.Errorf("%w: setup name must not be empty", ErrInvalidArgument)
	}

	return c.SendCommand(MIDSaveSetup, setupName)
}

// SaveVCCBitmap saves the vision control camera image as a bitmap file; the
// full path must end in ".bmp".
func (c *Client) SaveVCCBitmap(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".bmp" {
		return "", fmt.Errorf("%w: bitmap path must end in .bmp: %s", ErrInvalidArgument, path)
	}

	ans, err := c.SendCommand(MIDSaveVCCBitmap, path)
	if err != nil {
		return "", err
	}

	return answer.Result(ans)
}

// SaveRadialPowerMap saves the radial power map to a CSV file. nSamples is the
// number of concentric circles, nMaxAvgPoints the number of averaged points on
// the outer circle.
func (c *Client) SaveRadialPowerMap(nSamples int, nMaxAvgPoints int, path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return "", fmt.Errorf("%w: radial power map path must end in .csv: %s", ErrInvalidArgument, path)
	}
	if nSamples < 1 || nMaxAvgPoints < 1 {
		return "", fmt.Errorf("%w: sample counts must be positive", ErrInvalidArgument)
	}

	return c.SendCommand(MIDSaveRadialPowerMap, nSamples, nMaxAvgPoints, path)
}

// GetRadialPowerMapStats retrieves the radial power map statistics block.
func (c *Client) GetRadialPowerMapStats(nSamples int, nMaxAvgPoints int) (answer.FieldStats, error) {
	if nSamples < 1 || nMaxAvgPoints < 1 {
		return answer.FieldStats{}, fmt.Errorf("%w: sample counts must be positive", ErrInvalidArgument)
	}

	ans, err := c.SendCommand(MIDGetRadialPowerMapStats, nSamples, nMaxAvgPoints)
	if err != nil {
		return answer.FieldStats{}, err
	}

	return answer.Stats(ans)
}

// SetSHSFreerunState enables or disables the SHS freerun mode.
func (c *Client) SetSHSFreerunState(enabled bool) (string, error) {
	state := 0
	if enabled {
		state = 1
	}

	return c.SendCommand(MIDFreerunState, state)
}

// GetSHSFreerunState reports whether the SHS freerun mode is enabled.
func (c *Client) GetSHSFreerunState() (bool, error) {
	ans, err := c.SendCommand(MIDFreerunState)
	if err != nil {
		return false, err
	}

	return answer.Bool(ans)
}

// OpenCameras opens the connection to the cameras.
func (c *Client) OpenCameras() (string, error) {
	return c.SendCommand(MIDOpenCameras)
}

// CloseCameras closes the connection to the cameras.
func (c *Client) CloseCameras() (string, error) {
	return c.SendCommand(MIDCloseCameras)
}

// SetImprocCfgPath sets the path of the ImProc2.cfg file to use. A bare
// filename refers to the SHSWorks config folder; an empty path resets to the
// default.
func (c *Client) SetImprocCfgPath(path string) (string, error) {
	return c.SendCommand(MIDSetImprocCfgPath, path)
}

// --- convenience helpers built on the per-operation methods ---

// GetNumberOfPFItems returns the total number of pass/fail items.
func (c *Client) GetNumberOfPFItems() (int, error) {
	zernikes, err := c.GetNumberOfZernikes()
	if err != nil {
		return 0, err
	}

	firstZernike, err := c.GetFirstZernikeIndex()
	if err != nil {
		return 0, err
	}

	return zernikes + firstZernike, nil
}

// SelectPFItems switches the "Use" state on for the listed pass/fail items
// and off for all others.
func (c *Client) SelectPFItems(pfItems []int) error {
	total, err := c.GetNumberOfPFItems()
	if err != nil {
		return err
	}

	selected := make(map[int]struct{}, len(pfItems))
	for _, idx := range pfItems {
		selected[idx] = struct{}{}
	}

	for idx := 0; idx < total; idx++ {
		_, use := selected[idx]
		if _, err := c.SetPFItemUse(idx, use); err != nil {
			return err
		}
	}

	return nil
}

// SetPars sets every parameter in pars to its value, in lexical parameter
// order for reproducibility.
func (c *Client) SetPars(pars map[string]any) error {
	names := make([]string, 0, len(pars))
	for name := range pars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := c.SetPar(name, pars[name]); err != nil {
			return err
		}
	}

	return nil
}

// GetPFNamesMap returns the pass/fail item names keyed by item index.
func (c *Client) GetPFNamesMap() (map[int]string, error) {
	indices, err := c.GetPFIndices()
	if err != nil {
		return nil, err
	}

	names, err := c.GetPFNames()
	if err != nil {
		return nil, err
	}
	if len(indices) != len(names) {
		return nil, fmt.Errorf("%w: %d pass/fail indices for %d names", answer.ErrUnexpectedFormat, len(indices), len(names))
	}

	namesMap := make(map[int]string, len(indices))
	for i, idx := range indices {
		namesMap[idx] = names[i]
	}

	return namesMap, nil
}

// checkPassFailConfig disambiguates an empty pass/fail answer with a
// parameter query: either the pass/fail evaluation is switched off entirely,
// or it is on and no items are selected.
func (c *Client) checkPassFailConfig() error {
	enabled, err := c.GetPar("bPassFail")
	if err != nil {
		return err
	}

	if enabled.Int() == 0 {
		return ErrPassFailDisabled
	}

	return ErrNoPFItemsSelected
}
