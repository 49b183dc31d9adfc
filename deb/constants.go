package deb

// ControlField represents a standard field of a source or binary paragraph,
// in debian/control or in a Packages index.
type ControlField string

const (
	FieldPackage       ControlField = "Package"
	FieldVersion       ControlField = "Version"
	FieldArchitecture  ControlField = "Architecture"
	FieldMaintainer    ControlField = "Maintainer"
	FieldUploaders     ControlField = "Uploaders"
	FieldDescription   ControlField = "Description"
	FieldSection       ControlField = "Section"
	FieldPriority      ControlField = "Priority"
	FieldHomepage      ControlField = "Homepage"
	FieldEssential     ControlField = "Essential"
	FieldDepends       ControlField = "Depends"
	FieldPreDepends    ControlField = "Pre-Depends"
	FieldRecommends    ControlField = "Recommends"
	FieldSuggests      ControlField = "Suggests"
	FieldEnhances      ControlField = "Enhances"
	FieldConflicts     ControlField = "Conflicts"
	FieldBreaks        ControlField = "Breaks"
	FieldReplaces      ControlField = "Replaces"
	FieldProvides      ControlField = "Provides"
	FieldBuiltUsing    ControlField = "Built-Using"
	FieldSource        ControlField = "Source"
	FieldInstalledSize ControlField = "Installed-Size"

	// Source paragraph fields.
	FieldBuildDepends        ControlField = "Build-Depends"
	FieldBuildDependsIndep   ControlField = "Build-Depends-Indep"
	FieldBuildDependsArch    ControlField = "Build-Depends-Arch"
	FieldBuildConflicts      ControlField = "Build-Conflicts"
	FieldBuildConflictsIndep ControlField = "Build-Conflicts-Indep"
	FieldBuildConflictsArch  ControlField = "Build-Conflicts-Arch"
	FieldStandardsVersion    ControlField = "Standards-Version"
	FieldVcsGit              ControlField = "Vcs-Git"
	FieldVcsBrowser          ControlField = "Vcs-Browser"
	FieldRulesRequiresRoot   ControlField = "Rules-Requires-Root"
	FieldTestsuite           ControlField = "Testsuite"

	// Packages index fields.
	FieldFilename ControlField = "Filename"
	FieldSize     ControlField = "Size"
	FieldSHA256   ControlField = "SHA256"
	FieldMD5sum   ControlField = "MD5sum"
)

// relationFields are the fields whose value is a list of package relations.
var relationFields = []ControlField{
	FieldBuildDepends, FieldBuildDependsIndep, FieldBuildDependsArch,
	FieldBuildConflicts, FieldBuildConflictsIndep, FieldBuildConflictsArch,
	FieldPreDepends, FieldDepends, FieldRecommends, FieldSuggests, FieldEnhances,
	FieldConflicts, FieldBreaks, FieldReplaces, FieldProvides, FieldBuiltUsing,
}

// sourceFieldOrder and binaryFieldOrder are the field orders wrap-and-sort
// uses for debian/control.
var (
	sourceFieldOrder = []ControlField{
		FieldSource, FieldSection, FieldPriority, FieldMaintainer, FieldUploaders,
		FieldBuildDepends, FieldBuildDependsIndep, FieldBuildDependsArch,
		FieldBuildConflicts, FieldBuildConflictsIndep, FieldBuildConflictsArch,
		FieldStandardsVersion, FieldVcsBrowser, FieldVcsGit, FieldHomepage,
		FieldTestsuite, FieldRulesRequiresRoot,
	}
	binaryFieldOrder = []ControlField{
		FieldPackage, FieldArchitecture, FieldSection, FieldPriority, FieldEssential,
		FieldPreDepends, FieldDepends, FieldRecommends, FieldSuggests, FieldEnhances,
		FieldConflicts, FieldBreaks, FieldReplaces, FieldProvides, FieldBuiltUsing,
		FieldDescription,
	}
)

// ControlFile represents a standard file found in the control archive of a
// .deb.
type ControlFile string

const (
	FileControl   ControlFile = "control"
	FileMd5sums   ControlFile = "md5sums"
	FileConffiles ControlFile = "conffiles"
	FilePreinst   ControlFile = "preinst"
	FilePostinst  ControlFile = "postinst"
	FilePrerm     ControlFile = "prerm"
	FilePostrm    ControlFile = "postrm"
	FileConfig    ControlFile = "config"
	FileTriggers  ControlFile = "triggers"
)

// PackageFile represents a standard member of the .deb archive (ar format).
type PackageFile string

const (
	PkgDebianBinary  PackageFile = "debian-binary"
	PkgControlTar    PackageFile = "control.tar"
	PkgControlTarGz  PackageFile = "control.tar.gz"
	PkgControlTarXz  PackageFile = "control.tar.xz"
	PkgControlTarZst PackageFile = "control.tar.zst"
)

// ReleaseField represents a standard field in a Debian Release file.
type ReleaseField string

const (
	RelOrigin               ReleaseField = "Origin"
	RelLabel                ReleaseField = "Label"
	RelSuite                ReleaseField = "Suite"
	RelVersion              ReleaseField = "Version"
	RelCodename             ReleaseField = "Codename"
	RelDate                 ReleaseField = "Date"
	RelValidUntil           ReleaseField = "Valid-Until"
	RelArchitectures        ReleaseField = "Architectures"
	RelComponents           ReleaseField = "Components"
	RelDescription          ReleaseField = "Description"
	RelNotAutomatic         ReleaseField = "NotAutomatic"
	RelButAutomaticUpgrades ReleaseField = "ButAutomaticUpgrades"
	RelAcquireByHash        ReleaseField = "Acquire-By-Hash"
	RelMD5Sum               ReleaseField = "MD5Sum"
	RelSHA1                 ReleaseField = "SHA1"
	RelSHA256               ReleaseField = "SHA256"
	RelSHA512               ReleaseField = "SHA512"
)
