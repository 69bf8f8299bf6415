package integration

// remoteOnlyProject mirrors fixtures/project-sample.yaml without repositories
// or closure entries, so every artifact has to come from the repository
// passed on the request.
const remoteOnlyProject = `api_version: v1
project:
  coordinate: com.example:orders-service:1.4.0
  dependencies:
    - com.example:orders-api
    - org.slf4j:slf4j-simple
    - junit:junit
artifacts:
  - coordinate: com.example:orders-api:1.4.0
    requires:
      - org.slf4j:slf4j-api
      - com.fasterxml.jackson.core:jackson-databind
  - coordinate: org.slf4j:slf4j-simple:2.0.9
    scope: runtime
    requires:
      - org.slf4j:slf4j-api
  - coordinate: org.slf4j:slf4j-api:2.0.9
  - coordinate: com.fasterxml.jackson.core:jackson-databind:2.15.3
    requires:
      - com.fasterxml.jackson.core:jackson-core
  - coordinate: com.fasterxml.jackson.core:jackson-core:2.15.3
  - coordinate: junit:junit:4.13.2
    scope: test
    requires:
      - org.hamcrest:hamcrest-core
  - coordinate: org.hamcrest:hamcrest-core:1.3
    scope: test
`
