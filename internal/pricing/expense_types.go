package pricing

// OPEXType categorizes a stored operating-expense line.
type OPEXType string

const (
	// Personnel Costs
	OPEXSalariesAndWages            OPEXType = "Salaries and Wages"
	OPEXEmployeeBenefits            OPEXType = "Employee Benefits"
	OPEXStaffTrainingAndDevelopment OPEXType = "Staff Training and Development"
	OPEXRecruitmentExpenses         OPEXType = "Recruitment Expenses"

	// Occupancy Costs
	OPEXRent                OPEXType = "Rent"
	OPEXUtilities           OPEXType = "Utilities"
	OPEXPropertyTaxes       OPEXType = "Property Taxes"
	OPEXBuildingMaintenance OPEXType = "Building Maintenance and Repairs"

	// Administrative Expenses
	OPEXOfficeSupplies       OPEXType = "Office Supplies"
	OPEXPostageAndDelivery   OPEXType = "Postage and Delivery"
	OPEXBankCharges          OPEXType = "Bank Charges"
	OPEXLegalFees            OPEXType = "Legal and Professional Fees"
	OPEXInsurance            OPEXType = "Insurance"
	OPEXSubscriptionsAndDues OPEXType = "Subscriptions and Memberships"

	// Sales & Marketing
	OPEXAdvertising       OPEXType = "Advertising and Promotion"
	OPEXCommissions       OPEXType = "Sales Commissions"
	OPEXMarketingEvents   OPEXType = "Marketing Events and Sponsorships"
	OPEXCustomerRelations OPEXType = "Customer Service and Loyalty Programs"

	// IT & Communication
	OPEXSoftwareSubscriptions     OPEXType = "Software Subscriptions (SaaS)"
	OPEXITServices                OPEXType = "IT Support and Maintenance"
	OPEXInternetAndCommunications OPEXType = "Internet and Communication Costs"
	OPEXCloudServices             OPEXType = "Cloud Hosting and Services"

	// Travel & Transportation
	OPEXTravelExpenses           OPEXType = "Travel Expenses"
	OPEXVehicleExpenses          OPEXType = "Company Vehicle Costs"
	OPEXTransportationAllowances OPEXType = "Transportation Allowances"

	// Production/Operations
	OPEXRawMaterials           OPEXType = "Raw Materials (non-inventory)"
	OPEXSuppliesAndConsumables OPEXType = "Operational Supplies and Consumables"
	OPEXEquipmentRental        OPEXType = "Equipment Rental and Leasing"
	OPEXQualityControl         OPEXType = "Quality Control and Testing"

	// Outsourced Services
	OPEXContractorFees     OPEXType = "Contractor and Freelancer Fees"
	OPEXOutsourcedServices OPEXType = "Outsourced Business Services"
	OPEXSecurityServices   OPEXType = "Security Services"
	OPEXCleaningServices   OPEXType = "Cleaning and Janitorial Services"

	// Depreciation & Amortization
	OPEXDepreciationExpense OPEXType = "Depreciation"
	OPEXAmortizationExpense OPEXType = "Amortization"

	// Taxes (non-income)
	OPEXBusinessPermitsAndFees OPEXType = "Business Permits and Licenses"
	OPEXLocalTaxes             OPEXType = "Local Business Taxes"
	OPEXBIRComplianceFees      OPEXType = "BIR Filing and Penalty Fees"

	// Miscellaneous
	OPEXEntertainment       OPEXType = "Business Entertainment"
	OPEXDonations           OPEXType = "Donations and CSR"
	OPEXContingencyExpenses OPEXType = "Contingency and Unexpected Costs"
	OPEXMiscellaneous       OPEXType = "Miscellaneous"
)

// CAPEXType categorizes a stored capital-expense line.
type CAPEXType string

const (
	// Land & Buildings
	CAPEXLandPurchase          CAPEXType = "Land Purchase"
	CAPEXLandImprovements      CAPEXType = "Land Improvements"
	CAPEXBuildingConstruction  CAPEXType = "Building Construction"
	CAPEXBuildingImprovements  CAPEXType = "Building Renovation or Expansion"
	CAPEXLeaseholdImprovements CAPEXType = "Leasehold Improvements"

	// Furniture, Fixtures & Equipment (FF&E)
	CAPEXOfficeFurniture      CAPEXType = "Office Furniture"
	CAPEXFixtures             CAPEXType = "Fixtures and Built-ins"
	CAPEXSpecializedEquipment CAPEXType = "Specialized Equipment"
	CAPEXToolsAndMachinery    CAPEXType = "Tools and Machinery"

	// Technology & Infrastructure
	CAPEXComputerHardware           CAPEXType = "Computer Hardware"
	CAPEXNetworkInfrastructure      CAPEXType = "Network Infrastructure"
	CAPEXSecuritySystems            CAPEXType = "Security Systems and CCTV"
	CAPEXTelecommunicationEquipment CAPEXType = "Telecommunication Equipment"
	CAPEXDataCenterEquipment        CAPEXType = "Data Center and Server Equipment"

	// Vehicles
	CAPEXCompanyVehicles  CAPEXType = "Company Vehicles"
	CAPEXDeliveryVehicles CAPEXType = "Delivery or Service Vehicles"
	CAPEXHeavyEquipment   CAPEXType = "Heavy Equipment (e.g., forklifts, loaders)"

	// Intangible Assets
	CAPEXSoftwareLicenses     CAPEXType = "Software Licenses (Perpetual)"
	CAPEXPatentsAndTrademarks CAPEXType = "Patents and Trademarks"
	CAPEXBrandingAndIP        CAPEXType = "Brand Development and Intellectual Property"
	CAPEXWebsiteDevelopment   CAPEXType = "Capitalized Website or Platform Development"

	// Construction & Development
	CAPEXConstructionInProgress     CAPEXType = "Construction in Progress"
	CAPEXArchitectureAndEngineering CAPEXType = "Architecture and Engineering Fees"
	CAPEXPermitsAndFees             CAPEXType = "Construction Permits and Government Fees"
	CAPEXSitePreparation            CAPEXType = "Site Preparation and Excavation"

	// Lease & Acquisition Costs
	CAPEXAssetAcquisitionFees CAPEXType = "Asset Acquisition Costs"
	CAPEXLegalFeesForCapex    CAPEXType = "Legal Fees for Asset Acquisition"
	CAPEXDueDiligenceCosts    CAPEXType = "Due Diligence and Surveys"

	// Environmental & Safety
	CAPEXEnergySystems          CAPEXType = "Renewable Energy Systems (e.g., Solar Panels)"
	CAPEXFireProtectionSystems  CAPEXType = "Fire Protection and Emergency Systems"
	CAPEXWasteManagementSystems CAPEXType = "Waste and Water Treatment Systems"

	// Other Capitalized Assets
	CAPEXRAndDEquipment            CAPEXType = "R&D Equipment and Lab Instruments"
	CAPEXLibraryCollections        CAPEXType = "Capitalized Library or Media Collections"
	CAPEXLearningAndTrainingAssets CAPEXType = "Training Infrastructure and Simulators"

	// Miscellaneous
	CAPEXCapitalizedInterest  CAPEXType = "Capitalized Interest"
	CAPEXContingencyReserves  CAPEXType = "Contingency Reserves for Capex"
	CAPEXOtherCapitalExpenses CAPEXType = "Other Capital Expenditures"
)
