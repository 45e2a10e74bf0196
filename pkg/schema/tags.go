package schema

import "github.com/joshuapare/esmkit/pkg/types"

// Subrecord tags used by the built-in loaders.
var (
	tagEDID = types.NewTag("EDID")
	tagFULL = types.NewTag("FULL")
	tagMODL = types.NewTag("MODL")
	tagMODB = types.NewTag("MODB")
	tagICON = types.NewTag("ICON")
	tagMICO = types.NewTag("MICO")
	tagSCRI = types.NewTag("SCRI")
	tagDATA = types.NewTag("DATA")

	// door
	tagSNAM = types.NewTag("SNAM")
	tagANAM = types.NewTag("ANAM")
	tagBNAM = types.NewTag("BNAM")
	tagFNAM = types.NewTag("FNAM")
	tagTNAM = types.NewTag("TNAM")

	// potion
	tagYNAM = types.NewTag("YNAM")
	tagZNAM = types.NewTag("ZNAM")
	tagENIT = types.NewTag("ENIT")
	tagEFID = types.NewTag("EFID")
	tagEFIT = types.NewTag("EFIT")
	tagSCIT = types.NewTag("SCIT")

	// file header
	tagHEDR = types.NewTag("HEDR")
	tagCNAM = types.NewTag("CNAM")
	tagMAST = types.NewTag("MAST")
	tagONAM = types.NewTag("ONAM")

	// global
	tagFLTV = types.NewTag("FLTV")
)
