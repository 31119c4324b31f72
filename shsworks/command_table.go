package shsworks

import "fmt"

// Opcodes (MIDs) of the SHSWorks TCP/IP remote interface.
//
// The MID selects which remote operation a command invokes; it is framed as a
// two-digit zero-padded decimal field.
const (
	MIDTest                   = 0
	MIDOpenLive               = 1
	MIDGrabOrg                = 2
	MIDGrabRef                = 3
	MIDEvaluation             = 4
	MIDLoadSetup              = 5
	MIDImportPar              = 6
	MIDGetPFIndices           = 7
	MIDCloseLive              = 8
	MIDGetCamSettings         = 9
	MIDSetCamSetting          = 10
	MIDTiltCalOrg             = 11
	MIDTiltCalRef             = 12
	MIDImportSpotData         = 13
	MIDExportSpotData         = 14
	MIDEvalSpotData           = 15
	MIDSelectField            = 16
	MIDDeleteFields           = 17
	MIDCenterSample           = 18
	MIDGetCenterSampleState   = 19
	MIDGetPFNames             = 20
	MIDGetVersion             = 21
	MIDGetFirstZernikeIndex   = 22
	MIDGetNumberOfZernikes    = 23
	MIDGetPFValues            = 24
	MIDGetTotalPFResult       = 25
	MIDGetPar                 = 26
	MIDSetPar                 = 27
	MIDGetPFItemValue         = 28
	MIDGetPFItemResult        = 29
	MIDLoadFile               = 30
	MIDSaveFile               = 31
	MIDSetOutputPath          = 32
	MIDSetOutputName          = 33
	MIDCopyDataFromTo         = 34
	MIDGetFieldStats          = 35
	MIDGetPFItemUse           = 36
	MIDSetPFItemUse           = 37
	MIDSaveSetup              = 38
	MIDSaveVCCBitmap          = 39
	MIDSaveRadialPowerMap     = 40
	MIDGetRadialPowerMapStats = 41
	MIDFreerunState           = 42
	MIDOpenCameras            = 43
	MIDCloseCameras           = 44
	MIDSetImprocCfgPath       = 45
)

// MaxMID is the highest opcode the two-digit frame field can carry.
const MaxMID = 99

// commandNames maps each opcode to the name of its client method. The table is
// immutable process-wide static data, used only for diagnostic attribution of
// failing exchanges.
var commandNames = map[int]string{
	MIDTest:                   "Test",
	MIDOpenLive:               "OpenLive",
	MIDGrabOrg:                "GrabOrg",
	MIDGrabRef:                "GrabRef",
	MIDEvaluation:             "Evaluation",
	MIDLoadSetup:              "LoadSetup",
	MIDImportPar:              "ImportPar",
	MIDGetPFIndices:           "GetPFIndices",
	MIDCloseLive:              "CloseLive",
	MIDGetCamSettings:         "GetCamSettings",
	MIDSetCamSetting:          "SetCamSetting",
	MIDTiltCalOrg:             "TiltCalOrg",
	MIDTiltCalRef:             "TiltCalRef",
	MIDImportSpotData:         "ImportSpotData",
	MIDExportSpotData:         "ExportSpotData",
	MIDEvalSpotData:           "EvalSpotData",
	MIDSelectField:            "SelectField",
	MIDDeleteFields:           "DeleteFields",
	MIDCenterSample:           "CenterSample",
	MIDGetCenterSampleState:   "GetCenterSampleState",
	MIDGetPFNames:             "GetPFNames",
	MIDGetVersion:             "GetVersion",
	MIDGetFirstZernikeIndex:   "GetFirstZernikeIndex",
	MIDGetNumberOfZernikes:    "GetNumberOfZernikes",
	MIDGetPFValues:            "GetPFValues",
	MIDGetTotalPFResult:       "GetTotalPFResult",
	MIDGetPar:                 "GetPar",
	MIDSetPar:                 "SetPar",
	MIDGetPFItemValue:         "GetPFItemValue",
	MIDGetPFItemResult:        "GetPFItemResult",
	MIDLoadFile:               "LoadFile",
	MIDSaveFile:               "SaveFile",
	MIDSetOutputPath:          "SetOutputPath",
	MIDSetOutputName:          "SetOutputName",
	MIDCopyDataFromTo:         "CopyDataFromTo",
	MIDGetFieldStats:          "GetFieldStats",
	MIDGetPFItemUse:           "GetPFItemUse",
	MIDSetPFItemUse:           "SetPFItemUse",
	MIDSaveSetup:              "SaveSetup",
	MIDSaveVCCBitmap:          "SaveVCCBitmap",
	MIDSaveRadialPowerMap:     "SaveRadialPowerMap",
	MIDGetRadialPowerMapStats: "GetRadialPowerMapStats",
	MIDFreerunState:           "FreerunState",
	MIDOpenCameras:            "OpenCameras",
	MIDCloseCameras:           "CloseCameras",
	MIDSetImprocCfgPath:       "SetImprocCfgPath",
}

// CommandName returns the human-readable name for an opcode, falling back to
// the numeric form for opcodes outside the known table.
func CommandName(mid int) string {
	if name, ok := commandNames[mid]; ok {
		return name
	}

	return fmt.Sprintf("command%02d", mid)
}
