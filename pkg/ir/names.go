package ir

// opNames backs Op.String() for dispatcher diagnostics; kept in its own
// file since it's purely a debugging aid, not part of the opcode model.
var opNames = map[Op]string{
	OpInvalid: "Invalid",

	OpAdd:  "Add",
	OpSub:  "Sub",
	OpOr:   "Or",
	OpAnd:  "And",
	OpXor:  "Xor",
	OpAndn: "Andn",
	OpNeg:  "Neg",
	OpNot:  "Not",
	OpMul:  "Mul",
	OpUMul: "UMul",
	OpDiv:  "Div",
	OpUDiv: "UDiv",
	OpRem:  "Rem",
	OpURem: "URem",
	OpMulH: "MulH",
	OpUMulH: "UMulH",

	OpLshl:                "Lshl",
	OpLshr:                "Lshr",
	OpAshr:                "Ashr",
	OpRor:                 "Ror",
	OpExtr:                "Extr",
	OpBfi:                 "Bfi",
	OpBfe:                 "Bfe",
	OpSbfe:                "Sbfe",
	OpPopcount:            "Popcount",
	OpFindLSB:             "FindLSB",
	OpFindMSB:             "FindMSB",
	OpFindTrailingZeros:   "FindTrailingZeros",
	OpCountLeadingZeroes:  "CountLeadingZeroes",
	OpRev:                 "Rev",
	OpPDep:                "PDep",
	OpPExt:                "PExt",
	OpLDiv:                "LDiv",
	OpLUDiv:               "LUDiv",
	OpLRem:                "LRem",
	OpLURem:               "LURem",

	OpSelect: "Select",

	OpVAdd:      "VAdd",
	OpVSub:      "VSub",
	OpVMul:      "VMul",
	OpVUQAdd:    "VUQAdd",
	OpVUQSub:    "VUQSub",
	OpVSQAdd:    "VSQAdd",
	OpVSQSub:    "VSQSub",
	OpVUMin:     "VUMin",
	OpVSMin:     "VSMin",
	OpVUMax:     "VUMax",
	OpVSMax:     "VSMax",
	OpVUMull:    "VUMull",
	OpVSMull:    "VSMull",
	OpVUMull2:   "VUMull2",
	OpVSMull2:   "VSMull2",
	OpVUABDL:    "VUABDL",
	OpVURAvg:    "VURAvg",
	OpVNeg:      "VNeg",
	OpVAbs:      "VAbs",
	OpVPopcount: "VPopcount",
	OpVAddP:     "VAddP",
	OpVFAddP:    "VFAddP",
	OpVAddV:     "VAddV",
	OpVUMinV:    "VUMinV",

	OpVUShl:    "VUShl",
	OpVUShr:    "VUShr",
	OpVSShr:    "VSShr",
	OpVUShlS:   "VUShlS",
	OpVUShrS:   "VUShrS",
	OpVSShrS:   "VSShrS",
	OpVShlI:    "VShlI",
	OpVUShrI:   "VUShrI",
	OpVSShrI:   "VSShrI",
	OpVSLI:     "VSLI",
	OpVSRI:     "VSRI",
	OpVUShrNI:  "VUShrNI",
	OpVUShrNI2: "VUShrNI2",

	OpVCMPEQ:    "VCMPEQ",
	OpVCMPEQZ:   "VCMPEQZ",
	OpVCMPGT:    "VCMPGT",
	OpVCMPGTZ:   "VCMPGTZ",
	OpVCMPLTZ:   "VCMPLTZ",
	OpVFCMPEQ:   "VFCMPEQ",
	OpVFCMPNEQ:  "VFCMPNEQ",
	OpVFCMPLT:   "VFCMPLT",
	OpVFCMPGT:   "VFCMPGT",
	OpVFCMPLE:   "VFCMPLE",
	OpVFCMPORD:  "VFCMPORD",
	OpVFCMPUNO:  "VFCMPUNO",

	OpVSXTL:         "VSXTL",
	OpVUXTL:         "VUXTL",
	OpVSXTL2:        "VSXTL2",
	OpVUXTL2:        "VUXTL2",
	OpVSQXTN:        "VSQXTN",
	OpVSQXTUN:       "VSQXTUN",
	OpVSQXTN2:       "VSQXTN2",
	OpVSQXTUN2:      "VSQXTUN2",
	OpFloatToGPR_ZS: "Float_ToGPR_ZS",
	OpFloatToGPR_S:  "Float_ToGPR_S",
	OpFCmp:          "FCmp",

	OpVectorZero:        "VectorZero",
	OpVectorImm:         "VectorImm",
	OpSplatVector2:      "SplatVector2",
	OpSplatVector4:      "SplatVector4",
	OpVMov:              "VMov",
	OpVZip:              "VZip",
	OpVZip2:             "VZip2",
	OpVUnZip:            "VUnZip",
	OpVUnZip2:           "VUnZip2",
	OpVBSL:              "VBSL",
	OpVExtr:             "VExtr",
	OpVTBL1:             "VTBL1",
	OpVRev64:            "VRev64",
	OpVDupElement:       "VDupElement",
	OpVExtractElement:   "VExtractElement",
	OpVExtractToGPR:     "VExtractToGPR",
	OpVInsElement:       "VInsElement",
	OpVInsScalarElement: "VInsScalarElement",
	OpVBitcast:          "VBitcast",
	OpVNot:              "VNot",
	OpTruncElementPair:  "TruncElementPair",

	OpVFAdd:   "VFAdd",
	OpVFSub:   "VFSub",
	OpVFMul:   "VFMul",
	OpVFDiv:   "VFDiv",
	OpVFMin:   "VFMin",
	OpVFMax:   "VFMax",
	OpVFRecp:  "VFRecp",
	OpVFSqrt:  "VFSqrt",
	OpVFRSqrt: "VFRSqrt",
	OpVFNeg:   "VFNeg",

	OpConstant:               "Constant",
	OpEntrypointOffset:       "EntrypointOffset",
	OpInlineConstant:         "InlineConstant",
	OpInlineEntrypointOffset: "InlineEntrypointOffset",
	OpCycleCounter:           "CycleCounter",
}
