package catalog

// Report prompt template text. The leading and trailing newlines are part
// of the rendered payloads.

const occupancyTemplate = `
%s

Include:
1. Total apartments vs occupied
2. Vacancy rate
3. List of vacant apartments
4. Summary statistics

Format as Markdown with tables where appropriate.
`

const tenantListTemplate = `
%s %s

Include:
1. Tenant names and apartment numbers
2. Owner/renter status
3. Move-in dates
4. Organized by building

Format as Markdown with tables.
`

const historyTemplate = `
Generate tenant history report for Building %d, Apartment %d.

Include:
1. Current tenant information
2. Timeline of all previous tenants
3. Duration of each tenancy
4. Owner/renter status for each period

Format as Markdown with a timeline visualization.
`

const systemPromptTemplate = `
You are a tenant management assistant. You have access to tenant data for:
%s

You can query:
- Current tenants and their details
- Tenant history for apartments
- Occupancy statistics
- WhatsApp group contacts
- Parking authorizations

Respond in Markdown format.
`
